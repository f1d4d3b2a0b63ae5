package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	"github.com/Mahamundra/Kalbook-sub000/internal/service/settings/models"
)

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	upserted *domain.BusinessSettings
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.BusinessSettings) (*domain.BusinessSettings, error) {
	f.upserted = s
	f.settings = s
	return s, nil
}

type fakeCatalogClient struct {
	business *catalogClient.Business
}

func (f *fakeCatalogClient) GetBusiness(_ context.Context, businessID int64) (*catalogClient.Business, error) {
	if f.business == nil || f.business.ID != businessID {
		return nil, catalogClient.ErrBusinessNotFound
	}
	return f.business, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeSettingsRepo) *Service {
	return NewService(
		repo,
		&fakeCatalogClient{business: &catalogClient.Business{
			ID: 1, Name: "Salon", Active: true, ManagerIDs: []int64{500},
		}},
		nopLogger{},
	)
}

func validUpdateRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  500,
		BusinessID:              1,
		WorkingDays:             []int{1, 2, 3, 4, 5},
		WorkStart:               "10:00",
		WorkEnd:                 "19:00",
		SlotGapMinutes:          15,
		AllowCustomerReschedule: true,
		RequireApproval:         false,
	}
}

func TestGet_DefaultsWhenMissing(t *testing.T) {
	svc := newService(&fakeSettingsRepo{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWorkingDays, resp.WorkingDays)
	assert.Equal(t, domain.DefaultWorkStart.String(), resp.WorkStart)
	assert.Equal(t, domain.DefaultWorkEnd.String(), resp.WorkEnd)
	assert.Equal(t, domain.DefaultSlotGapMinutes, resp.SlotGapMinutes)
	assert.True(t, resp.AllowCustomerReschedule)
	assert.True(t, resp.RequireApproval)
	assert.Nil(t, resp.UpdatedAt)
}

func TestGet_StoredSettings(t *testing.T) {
	svc := newService(&fakeSettingsRepo{settings: &domain.BusinessSettings{
		ID:             3,
		BusinessID:     1,
		WorkingDays:    []int{2, 4},
		WorkStart:      "08:00",
		WorkEnd:        "14:00",
		SlotGapMinutes: 20,
	}})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, resp.WorkingDays)
	assert.Equal(t, "08:00", resp.WorkStart)
	assert.Equal(t, 20, resp.SlotGapMinutes)
}

func TestUpdate_Success(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newService(repo)

	resp, err := svc.Update(context.Background(), validUpdateRequest())
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), repo.upserted.BusinessID)
	assert.Equal(t, "10:00", resp.WorkStart)
	assert.Equal(t, 15, resp.SlotGapMinutes)
	assert.False(t, resp.RequireApproval)
}

func TestUpdate_ManagerOnly(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newService(repo)

	req := validUpdateRequest()
	req.UserID = 7

	_, err := svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_BusinessNotFound(t *testing.T) {
	svc := newService(&fakeSettingsRepo{})

	req := validUpdateRequest()
	req.BusinessID = 99

	_, err := svc.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.UpdateSettingsRequest)
	}{
		{"empty working days", func(r *models.UpdateSettingsRequest) { r.WorkingDays = nil }},
		{"day out of range", func(r *models.UpdateSettingsRequest) { r.WorkingDays = []int{1, 7} }},
		{"duplicate day", func(r *models.UpdateSettingsRequest) { r.WorkingDays = []int{1, 1} }},
		{"bad work start", func(r *models.UpdateSettingsRequest) { r.WorkStart = "25:00" }},
		{"bad work end", func(r *models.UpdateSettingsRequest) { r.WorkEnd = "nine" }},
		{"start after end", func(r *models.UpdateSettingsRequest) { r.WorkStart = "19:00"; r.WorkEnd = "10:00" }},
		{"start equals end", func(r *models.UpdateSettingsRequest) { r.WorkStart = "10:00"; r.WorkEnd = "10:00" }},
		{"gap too small", func(r *models.UpdateSettingsRequest) { r.SlotGapMinutes = 1 }},
		{"gap too large", func(r *models.UpdateSettingsRequest) { r.SlotGapMinutes = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSettingsRepo{}
			svc := newService(repo)

			req := validUpdateRequest()
			tt.mutate(req)

			_, err := svc.Update(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.upserted)
		})
	}
}
