package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleStudent = "student"
	RoleTeacher = "teacher"

	CourseHTML   = "HTML"
	CourseCpp    = "C++"
	CoursePython = "Python"

	// LectureSlots is the fixed curriculum size per course.
	LectureSlots = 6

	RecordTypeLecture = "lecture"
	RecordTypeQuiz    = "quiz"
)

// Courses in display order. The curriculum is fixed, there is no course CRUD.
var Courses = []string{CourseHTML, CourseCpp, CoursePython}

func IsValidCourse(course string) bool {
	for _, c := range Courses {
		if c == course {
			return true
		}
	}
	return false
}

func IsValidLectureID(id int) bool {
	return id >= 1 && id <= LectureSlots
}
