package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/models"
	"tikoncha/internal/repositories"
)

// In-memory doubles for the repository interfaces. They mimic the postgres
// implementations closely enough for service-level tests: nil for "not
// found", Conflict on duplicates.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	for _, ex := range f.users {
		if ex.PhoneNumber == u.PhoneNumber && ex.RoleName == u.RoleName {
			return apperrors.E(apperrors.Conflict, "user already exists")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByPhoneAndRole(phone, role string) (*models.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone && u.RoleName == role {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(id uuid.UUID, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateTelegramChat(userID uuid.UUID, chatID int64) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.E(apperrors.NotFound, "user not found")
	}
	u.TelegramChatID = &chatID
	return nil
}

func (f *fakeUserRepo) GetByChatID(chatID int64) (*models.User, error) {
	for _, u := range f.users {
		if u.TelegramChatID != nil && *u.TelegramChatID == chatID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeRegRepo struct {
	pending map[string]*models.PendingUser // по номеру телефона
	otps    []*models.OTPEntry
	users   *fakeUserRepo // Promote создаёт пользователя здесь
}

func newFakeRegRepo(users *fakeUserRepo) *fakeRegRepo {
	return &fakeRegRepo{pending: map[string]*models.PendingUser{}, users: users}
}

func (f *fakeRegRepo) DeletePendingByPhone(phone string) error {
	delete(f.pending, phone)
	kept := f.otps[:0]
	for _, e := range f.otps {
		if e.PhoneNumber != phone {
			kept = append(kept, e)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeRegRepo) CreatePending(p *models.PendingUser) error {
	if _, ok := f.pending[p.PhoneNumber]; ok {
		return apperrors.E(apperrors.Conflict, "registration already pending for this phone")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	f.pending[p.PhoneNumber] = &cp
	return nil
}

func (f *fakeRegRepo) GetPendingByPhone(phone string) (*models.PendingUser, error) {
	p, ok := f.pending[phone]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRegRepo) CreateOTP(e *models.OTPEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	f.otps = append(f.otps, &cp)
	return nil
}

func (f *fakeRegRepo) LatestUnusedOTP(phone string) (*models.OTPEntry, error) {
	var latest *models.OTPEntry
	for _, e := range f.otps {
		if e.PhoneNumber != phone || e.Used {
			continue
		}
		if latest == nil || e.ExpiresAt.After(latest.ExpiresAt) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRegRepo) Promote(otpID uuid.UUID, phone string) (*models.User, error) {
	var entry *models.OTPEntry
	for _, e := range f.otps {
		if e.ID == otpID && !e.Used {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, apperrors.E(apperrors.Conflict, "code already used")
	}
	entry.Used = true

	p, ok := f.pending[phone]
	if !ok {
		return nil, apperrors.E(apperrors.Conflict, "pending registration not found")
	}
	user := &models.User{
		Username:     p.Username,
		PhoneNumber:  p.PhoneNumber,
		RoleName:     p.RoleName,
		PasswordHash: p.PasswordHash,
	}
	if err := f.users.Create(user); err != nil {
		return nil, err
	}
	delete(f.pending, phone)
	return user, nil
}

type fakeSMS struct {
	sent []string // телефоны
	text string
	err  error
}

func (f *fakeSMS) SendSMS(phone, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	f.text = text
	return nil
}

type fakeStudentRepo struct {
	infos map[uuid.UUID]*models.StudentInfo // по user_id
}

func (f *fakeStudentRepo) Create(si *models.StudentInfo) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	cp := *si
	f.infos[si.UserID] = &cp
	return nil
}

func (f *fakeStudentRepo) GetByUserID(userID uuid.UUID) (*models.StudentInfo, error) {
	si, ok := f.infos[userID]
	if !ok {
		return nil, nil
	}
	cp := *si
	return &cp, nil
}

func (f *fakeStudentRepo) Update(si *models.StudentInfo) error {
	cp := *si
	f.infos[si.UserID] = &cp
	return nil
}

func (f *fakeStudentRepo) DeleteByUserID(userID uuid.UUID) error {
	delete(f.infos, userID)
	return nil
}

func (f *fakeStudentRepo) ListByParent(parentID uuid.UUID) ([]*models.StudentInfo, error) {
	var out []*models.StudentInfo
	for _, si := range f.infos {
		if (si.FatherID != nil && *si.FatherID == parentID) ||
			(si.MotherID != nil && *si.MotherID == parentID) {
			cp := *si
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSchoolRepo struct {
	schools map[uuid.UUID]*models.School
}

func (f *fakeSchoolRepo) Create(s *models.School) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	f.schools[s.ID] = &cp
	return nil
}

func (f *fakeSchoolRepo) GetByID(id uuid.UUID) (*models.School, error) {
	s, ok := f.schools[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSchoolRepo) List(_ repositories.SchoolFilter) ([]*models.School, error) {
	var out []*models.School
	for _, s := range f.schools {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSchoolRepo) Update(s *models.School) error {
	cp := *s
	f.schools[s.ID] = &cp
	return nil
}

func (f *fakeSchoolRepo) Delete(id uuid.UUID) error {
	delete(f.schools, id)
	return nil
}

type fakePolicyRepo struct {
	apps map[uuid.UUID][]*models.PolicyAppDetail
	webs map[uuid.UUID][]*models.PolicyWebDetail
}

func (f *fakePolicyRepo) Create(*models.Policy) error                 { return errors.New("not implemented") }
func (f *fakePolicyRepo) GetByID(uuid.UUID) (*models.Policy, error)   { return nil, nil }
func (f *fakePolicyRepo) GetByRole(uuid.UUID) (*models.Policy, error) { return nil, nil }
func (f *fakePolicyRepo) List() ([]*models.Policy, error)             { return nil, nil }
func (f *fakePolicyRepo) Update(*models.Policy) error                 { return errors.New("not implemented") }
func (f *fakePolicyRepo) Delete(uuid.UUID) error                      { return errors.New("not implemented") }
func (f *fakePolicyRepo) AttachApp(*models.PolicyApp) error           { return errors.New("not implemented") }
func (f *fakePolicyRepo) DetachApp(uuid.UUID, uuid.UUID) error        { return errors.New("not implemented") }
func (f *fakePolicyRepo) AttachWeb(*models.PolicyWeb) error           { return errors.New("not implemented") }
func (f *fakePolicyRepo) DetachWeb(uuid.UUID, uuid.UUID) error        { return errors.New("not implemented") }

func (f *fakePolicyRepo) ListApps(policyID uuid.UUID) ([]*models.PolicyAppDetail, error) {
	return f.apps[policyID], nil
}

func (f *fakePolicyRepo) ListWebs(policyID uuid.UUID) ([]*models.PolicyWebDetail, error) {
	return f.webs[policyID], nil
}
