package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
)

type fakeAppService struct {
	requests []*models.AppRequest
}

func (f *fakeAppService) Create(*models.App) error                       { return nil }
func (f *fakeAppService) GetByID(uuid.UUID) (*models.App, error)         { return nil, nil }
func (f *fakeAppService) List(int, int) ([]*models.App, error)           { return nil, nil }
func (f *fakeAppService) Update(*models.App) error                       { return nil }
func (f *fakeAppService) Delete(uuid.UUID) error                         { return nil }
func (f *fakeAppService) GetRequest(uuid.UUID) (*models.AppRequest, error) { return nil, nil }
func (f *fakeAppService) ListRequests(string) ([]*models.AppRequest, error) { return nil, nil }
func (f *fakeAppService) ResolveRequest(uuid.UUID, bool, uuid.UUID, string) error { return nil }

func (f *fakeAppService) SubmitRequest(req *models.AppRequest) error {
	req.ID = uuid.New()
	req.Status = models.AppRequestPending
	f.requests = append(f.requests, req)
	return nil
}

type blockingFixture struct {
	svc       BlockingService
	students  *fakeStudentRepo
	policies  *fakePolicyRepo
	appSvc    *fakeAppService
	studentID uuid.UUID
	policyID  uuid.UUID
}

func newBlockingFixture(t *testing.T, shift string, withPolicy bool) *blockingFixture {
	t.Helper()

	students := &fakeStudentRepo{infos: map[uuid.UUID]*models.StudentInfo{}}
	schools := &fakeSchoolRepo{schools: map[uuid.UUID]*models.School{}}
	policies := &fakePolicyRepo{
		apps: map[uuid.UUID][]*models.PolicyAppDetail{},
		webs: map[uuid.UUID][]*models.PolicyWebDetail{},
	}
	appSvc := &fakeAppService{}

	policyID := uuid.New()
	school := &models.School{Name: "School 12"}
	if withPolicy {
		school.PolicyID = &policyID
	}
	require.NoError(t, schools.Create(school))

	studentID := uuid.New()
	require.NoError(t, students.Create(&models.StudentInfo{
		UserID:   studentID,
		SchoolID: school.ID,
		Shift:    shift,
	}))

	return &blockingFixture{
		svc:       NewBlockingService(students, schools, policies, appSvc),
		students:  students,
		policies:  policies,
		appSvc:    appSvc,
		studentID: studentID,
		policyID:  policyID,
	}
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 30, 0, 0, time.Local)
}

func TestBlockingStatusDuringShift(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, true)

	st, err := fx.svc.Status(fx.studentID, at(10))
	require.NoError(t, err)
	require.True(t, st.PolicyActive)
	require.Equal(t, fx.policyID, *st.PolicyID)
	require.Equal(t, 8, st.WindowStart)
	require.Equal(t, 13, st.WindowEnd)
}

func TestBlockingStatusOutsideShift(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, true)

	for _, hour := range []int{7, 13, 20} {
		st, err := fx.svc.Status(fx.studentID, at(hour))
		require.NoError(t, err)
		require.False(t, st.PolicyActive, "hour=%d", hour)
	}
}

func TestBlockingStatusNoPolicy(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, false)

	st, err := fx.svc.Status(fx.studentID, at(10))
	require.NoError(t, err)
	require.False(t, st.PolicyActive)
	require.Nil(t, st.PolicyID)
}

func TestBlockingStatusUnknownStudent(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, true)

	_, err := fx.svc.Status(uuid.New(), at(10))
	require.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestBlockedAppsAndWebsites(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftEvening, true)
	fx.policies.apps[fx.policyID] = []*models.PolicyAppDetail{
		{Name: "TikTok", Package: "com.zhiliaoapp.musically"},
	}
	fx.policies.webs[fx.policyID] = []*models.PolicyWebDetail{
		{Domain: "tiktok.com"},
	}

	apps, err := fx.svc.BlockedApps(fx.studentID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, "TikTok", apps[0].Name)

	webs, err := fx.svc.BlockedWebsites(fx.studentID)
	require.NoError(t, err)
	require.Len(t, webs, 1)
	require.Equal(t, "tiktok.com", webs[0].Domain)
}

func TestBlockedAppsNoPolicyIsEmpty(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, false)

	apps, err := fx.svc.BlockedApps(fx.studentID)
	require.NoError(t, err)
	require.Empty(t, apps)
}

func TestSchedule(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftEvening, true)

	entries, err := fx.svc.Schedule(fx.studentID, at(14))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byShift := map[string]ScheduleEntry{}
	for _, e := range entries {
		byShift[e.Shift] = e
	}
	require.False(t, byShift[models.ShiftMorning].Current)
	require.True(t, byShift[models.ShiftEvening].Current)
	require.Equal(t, 13, byShift[models.ShiftEvening].StartHour)
	require.Equal(t, 18, byShift[models.ShiftEvening].EndHour)

	// утром вечерняя смена не активна
	entries, err = fx.svc.Schedule(fx.studentID, at(9))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, e.Current, "shift=%s", e.Shift)
	}
}

func TestRequestException(t *testing.T) {
	fx := newBlockingFixture(t, models.ShiftMorning, true)
	appID := uuid.New()

	req, err := fx.svc.RequestException(fx.studentID, appID, "нужен переводчик для урока")
	require.NoError(t, err)
	require.Equal(t, models.AppRequestPending, req.Status)
	require.Equal(t, appID, req.AppID)
	require.Equal(t, fx.studentID, req.FromUserID)
	require.Len(t, fx.appSvc.requests, 1)
}
