package service

import (
	"github.com/hassaammgl2/employee-management-system/internal/domain"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/hassaammgl2/employee-management-system/pkg/errs"
)

func (s *ServiceTestSuite) Test_AnnouncementVisibility() {
	admin := s.admin()
	worker := s.employeeUser("worker@example.com")

	active, err := s.announcements.AddAnnouncement(s.ctx, admin, dto.AnnouncementRequest{Title: "Holiday", Message: "Office closed Friday"})
	s.Require().NoError(err)
	s.True(active.IsActive)
	s.Equal(domain.PriorityMedium, active.Priority)
	s.Equal(admin.ID, active.CreatedBy)

	inactiveFlag := false
	hidden, err := s.announcements.AddAnnouncement(s.ctx, admin, dto.AnnouncementRequest{Title: "Draft", Message: "Not yet", IsActive: &inactiveFlag})
	s.Require().NoError(err)

	list, err := s.announcements.GetAnnouncements(s.ctx, worker, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.announcements.GetAnnouncements(s.ctx, admin, pkgFilterAll)
	s.Require().NoError(err)
	s.Len(list, 2)

	_, err = s.announcements.GetAnnouncementByID(s.ctx, worker, hidden.ID.Hex())
	s.ErrorIs(err, errs.ErrNotFound)

	_, err = s.announcements.GetAnnouncementByID(s.ctx, admin, hidden.ID.Hex())
	s.NoError(err)

	activeFlag := true
	_, err = s.announcements.UpdateAnnouncement(s.ctx, dto.AnnouncementUpdateRequest{ID: hidden.ID.Hex(), IsActive: &activeFlag})
	s.Require().NoError(err)

	_, err = s.announcements.GetAnnouncementByID(s.ctx, worker, hidden.ID.Hex())
	s.NoError(err)

	s.NoError(s.announcements.DeleteAnnouncement(s.ctx, active.ID.Hex()))
}
