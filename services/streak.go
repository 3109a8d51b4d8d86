package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/model"
)

// StreakService keeps the per-user consecutive-day activity counter. Ticks
// are best-effort enrichment: a store failure is logged and must never fail
// the activity that triggered it.
type StreakService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const STREAK_SVC = "streak_svc"

func (svc StreakService) Id() string {
	return STREAK_SVC
}

func (svc *StreakService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StreakService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

// startOfDay truncates to calendar-day granularity in server local time.
// Deriving "today" from the server clock mirrors the production behavior;
// users in other timezones can be misclassified near midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// applyStreakTick is the pure state transition for one qualifying activity
// on the given day. Same-day ticks change nothing, a consecutive day extends
// the streak, anything longer resets it to 1. changed is false only for the
// same-day case.
func applyStreakTick(s model.StreakState, today time.Time) (model.StreakState, bool) {
	today = startOfDay(today)

	if s.LastActivityDate == nil {
		s.CurrentStreak = 1
		s.TotalDaysActive = 1
	} else {
		lastDay := startOfDay(*s.LastActivityDate)
		daysDiff := int(today.Sub(lastDay).Hours() / 24)

		switch {
		case daysDiff == 0:
			return s, false
		case daysDiff == 1:
			s.CurrentStreak++
			s.TotalDaysActive++
		default:
			s.CurrentStreak = 1
			s.TotalDaysActive++
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivityDate = &today
	return s, true
}

// Tick records a qualifying activity for the user today and returns the
// resulting state.
func (svc *StreakService) Tick(userID string) (*model.StreakState, error) {
	return svc.TickAt(userID, time.Now())
}

func (svc *StreakService) TickAt(userID string, now time.Time) (*model.StreakState, error) {
	state, err := svc.sqlSvc.GetStreakState(userID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		id, _ := uuid.NewV7()
		state = &model.StreakState{
			ID:     id.String(),
			UserID: userID,
		}
		next, _ := applyStreakTick(*state, now)
		return svc.sqlSvc.CreateStreakState(&next)
	}

	next, changed := applyStreakTick(*state, now)
	if !changed {
		return state, nil
	}

	if err := svc.sqlSvc.UpdateStreakState(&next); err != nil {
		return nil, err
	}
	return &next, nil
}

// TickBestEffort wraps Tick for callers whose primary write must not be
// blocked by streak bookkeeping. Returns the state when available.
func (svc *StreakService) TickBestEffort(userID string) *model.StreakState {
	state, err := svc.Tick(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Streak tick dropped")
		return nil
	}
	return state
}

// GetOrCreate returns the user's streak, lazily creating a zero row on first
// read so the dashboard always has something to render.
func (svc *StreakService) GetOrCreate(userID string) (*model.StreakState, error) {
	state, err := svc.sqlSvc.GetStreakState(userID)
	if err == nil {
		return state, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	return svc.sqlSvc.CreateStreakState(&model.StreakState{
		ID:     id.String(),
		UserID: userID,
	})
}
