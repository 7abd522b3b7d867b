package service

import (
	"context"
	"strings"

	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	pkgdto "github.com/hassaammgl2/employee-management-system/pkg/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
)

type AnnouncementServiceImpl struct {
	announcementRepo repository.AnnouncementRepository
	now              Clock
}

func CreateNewAnnouncementService(announcementRepo repository.AnnouncementRepository, now Clock) AnnouncementService {
	return &AnnouncementServiceImpl{announcementRepo: announcementRepo, now: now}
}

func (s *AnnouncementServiceImpl) AddAnnouncement(ctx context.Context, user domain.User, req dto.AnnouncementRequest) (announcement domain.Announcement, err error) {
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now().UTC()
	announcement = domain.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Message:   strings.TrimSpace(req.Message),
		Priority:  priority,
		CreatedBy: user.ID,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	announcement.ID, err = s.announcementRepo.AddAnnouncement(ctx, announcement)
	if err != nil {
		return announcement, err
	}

	return announcement, nil
}

func (s *AnnouncementServiceImpl) GetAnnouncements(ctx context.Context, user domain.User, param pkgdto.Filter) (announcements []domain.Announcement, err error) {
	announcements, err = s.announcementRepo.GetAnnouncements(ctx, !user.IsAdmin(), param)
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []domain.Announcement{}
	}

	return announcements, nil
}

func (s *AnnouncementServiceImpl) GetAnnouncementByID(ctx context.Context, user domain.User, id string) (announcement domain.Announcement, err error) {
	announcementID, err := parseObjectID(id, "id")
	if err != nil {
		return announcement, err
	}

	announcement, err = s.announcementRepo.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		return announcement, err
	}

	if !announcement.IsActive && !user.IsAdmin() {
		return domain.Announcement{}, errs.NotFound("Announcement")
	}

	return announcement, nil
}

func (s *AnnouncementServiceImpl) UpdateAnnouncement(ctx context.Context, req dto.AnnouncementUpdateRequest) (announcement domain.Announcement, err error) {
	announcementID, err := parseObjectID(req.ID, "id")
	if err != nil {
		return announcement, err
	}

	announcement, err = s.announcementRepo.GetAnnouncementByID(ctx, announcementID)
	if err != nil {
		return announcement, err
	}

	if req.Title != nil {
		announcement.Title = strings.TrimSpace(*req.Title)
	}
	if req.Message != nil {
		announcement.Message = strings.TrimSpace(*req.Message)
	}
	if req.Priority != nil {
		announcement.Priority = *req.Priority
	}
	if req.IsActive != nil {
		announcement.IsActive = *req.IsActive
	}

	if err = s.announcementRepo.UpdateAnnouncement(ctx, announcement); err != nil {
		return domain.Announcement{}, err
	}

	announcement.UpdatedAt = s.now().UTC()
	return announcement, nil
}

func (s *AnnouncementServiceImpl) DeleteAnnouncement(ctx context.Context, id string) (err error) {
	announcementID, err := parseObjectID(id, "id")
	if err != nil {
		return err
	}

	return s.announcementRepo.DeleteAnnouncement(ctx, announcementID)
}
