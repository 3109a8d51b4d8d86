package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

// MediaService handles profile photo uploads. Photos live in object storage;
// the user row only keeps the object key and a presigned URL.
type MediaService struct {
	appContext.DefaultService
	sqlSvc   *SqlService
	minioSvc *MinIOService
	baseURL  string
}

const MEDIA_SVC = "media_svc"

const maxProfilePhotoSize = 2 * 1024 * 1024

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== PROFILE PHOTO METHODS ====================

func (svc *MediaService) UploadProfilePhoto(userID string, file *multipart.FileHeader) (*dto.ProfilePhotoResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > maxProfilePhotoSize {
		return nil, shared.NewBadRequestError(nil, "Photo too large. Maximum size: 2MB")
	}

	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("profile_photos/%s_%d%s", userID, time.Now().Unix(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload photo to storage")
	}

	fileURL, err := svc.minioSvc.GetFileURL(objectName, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warn("Failed to generate presigned URL")
		fileURL = fmt.Sprintf("%s/%s/%s", svc.baseURL, svc.minioSvc.GetBucketName(), objectName)
	}

	// Replace, not accumulate: the previous photo is dropped best-effort.
	if user.ProfilePhotoKey != "" {
		if err := svc.minioSvc.DeleteFile(user.ProfilePhotoKey); err != nil {
			log.WithError(err).WithField("object", user.ProfilePhotoKey).Warn("Failed to delete previous profile photo")
		}
	}

	user.ProfilePhotoURL = fileURL
	user.ProfilePhotoKey = objectName
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, err
	}

	return &dto.ProfilePhotoResponse{
		ProfilePhotoURL: fileURL,
		UploadedAt:      time.Now(),
	}, nil
}

func (svc *MediaService) DeleteProfilePhoto(userID string) error {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return err
	}

	if user.ProfilePhotoKey != "" {
		if err := svc.minioSvc.DeleteFile(user.ProfilePhotoKey); err != nil {
			log.WithError(err).WithField("object", user.ProfilePhotoKey).Warn("Failed to delete profile photo object")
		}
	}

	user.ProfilePhotoURL = ""
	user.ProfilePhotoKey = ""
	return svc.sqlSvc.UpdateUser(user)
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".webp"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}
