package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userModel "karateku_backend/internals/features/users/user/model"
)

/* ===============================
   Fakes
=================================*/

type fakeStore struct {
	students []userModel.UserModel
	payments []paymentModel.PaymentModel
	blocked  map[uuid.UUID]bool

	createErrFor map[uuid.UUID]error // per student
	blockErrFor  map[uuid.UUID]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blocked:      map[uuid.UUID]bool{},
		createErrFor: map[uuid.UUID]error{},
		blockErrFor:  map[uuid.UUID]error{},
	}
}

func (f *fakeStore) ListActiveStudents() ([]userModel.UserModel, error) {
	var out []userModel.UserModel
	for _, s := range f.students {
		if s.Role == userModel.RoleStudent && !f.blocked[s.ID] && !s.IsBlocked {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePayment(p *paymentModel.PaymentModel) error {
	if err := f.createErrFor[p.StudentID]; err != nil {
		return err
	}
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeStore) ListPendingDueBefore(threshold time.Time) ([]PendingPayment, error) {
	var out []PendingPayment
	for _, p := range f.payments {
		if p.Status == paymentModel.PaymentStatusPending && !p.DueDate.After(threshold) {
			email := ""
			for _, s := range f.students {
				if s.ID == p.StudentID {
					email = s.Email
				}
			}
			out = append(out, PendingPayment{Payment: p, StudentID: p.StudentID, StudentEmail: email})
		}
	}
	return out, nil
}

func (f *fakeStore) BlockUser(id uuid.UUID) error {
	if err := f.blockErrFor[id]; err != nil {
		return err
	}
	f.blocked[id] = true
	return nil
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error // keyed by recipient
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]error{}}
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if err := f.failFor[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func plan(p userModel.MembershipPlan) *userModel.MembershipPlan { return &p }

func newStudent(email string, p userModel.MembershipPlan) userModel.UserModel {
	instructorID := uuid.New()
	return userModel.UserModel{
		ID:             uuid.New(),
		Email:          email,
		Role:           userModel.RoleStudent,
		MembershipPlan: plan(p),
		InstructorID:   &instructorID,
		BeltLevel:      userModel.BeltWhite,
	}
}

/* ===============================
   GenerateMonthlyCharges
=================================*/

func TestGenerateMonthlyCharges(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	store.students = []userModel.UserModel{
		newStudent("a@dojo.test", userModel.Plan2Classes),
		newStudent("b@dojo.test", userModel.Plan3Classes),
		newStudent("c@dojo.test", userModel.Plan4Classes),
	}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.GenerateMonthlyCharges(now))

	require.Len(t, store.payments, 3)
	wantFees := map[string]float64{"a@dojo.test": 14.99, "b@dojo.test": 22.99, "c@dojo.test": 29.99}
	for i, s := range store.students {
		p := store.payments[i]
		assert.Equal(t, s.ID, p.StudentID)
		assert.Equal(t, wantFees[s.Email], p.Amount)
		assert.Equal(t, paymentModel.PaymentStatusPending, p.Status)
		assert.Equal(t, now.AddDate(0, 1, 0), p.DueDate)
	}
	assert.Len(t, mailer.sent, 3)
}

func TestGenerateMonthlyChargesSkipsBlockedStudents(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	active := newStudent("active@dojo.test", userModel.Plan2Classes)
	blockedStudent := newStudent("blocked@dojo.test", userModel.Plan2Classes)
	blockedStudent.IsBlocked = true
	store.students = []userModel.UserModel{active, blockedStudent}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.GenerateMonthlyCharges(time.Now()))

	require.Len(t, store.payments, 1)
	assert.Equal(t, active.ID, store.payments[0].StudentID)
}

func TestGenerateMonthlyChargesIsolatesMailFailures(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	store.students = []userModel.UserModel{
		newStudent("fail@dojo.test", userModel.Plan2Classes),
		newStudent("ok@dojo.test", userModel.Plan3Classes),
	}
	mailer.failFor["fail@dojo.test"] = errors.New("smtp down")

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.GenerateMonthlyCharges(time.Now()))

	// kedua payment tetap terbuat, hanya satu email terkirim
	assert.Len(t, store.payments, 2)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ok@dojo.test", mailer.sent[0].to)
}

func TestGenerateMonthlyChargesIsolatesStoreFailures(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	broken := newStudent("broken@dojo.test", userModel.Plan2Classes)
	ok := newStudent("ok@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{broken, ok}
	store.createErrFor[broken.ID] = errors.New("constraint violation")

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.GenerateMonthlyCharges(time.Now()))

	require.Len(t, store.payments, 1)
	assert.Equal(t, ok.ID, store.payments[0].StudentID)
	// student yang gagal dibuatkan payment tidak di-email
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ok@dojo.test", mailer.sent[0].to)
}

// Tanpa guard periode: dua invocation di bulan yang sama menghasilkan
// tagihan dobel. Perilaku dari desain asal, dipertahankan.
func TestGenerateMonthlyChargesHasNoDuplicateGuard(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	store.students = []userModel.UserModel{newStudent("a@dojo.test", userModel.Plan2Classes)}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.GenerateMonthlyCharges(now))
	require.NoError(t, svc.GenerateMonthlyCharges(now))

	assert.Len(t, store.payments, 2)
}

/* ===============================
   BlockOverdueAccounts
=================================*/

func TestBlockOverdueAccounts(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	stale := newStudent("stale@dojo.test", userModel.Plan2Classes)
	fresh := newStudent("fresh@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{stale, fresh}
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	store.payments = []paymentModel.PaymentModel{
		{StudentID: stale.ID, Status: paymentModel.PaymentStatusPending, DueDate: now.AddDate(0, -2, -5)},
		{StudentID: fresh.ID, Status: paymentModel.PaymentStatusPending, DueDate: now.AddDate(0, -1, 0)},
	}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.BlockOverdueAccounts(now))

	assert.True(t, store.blocked[stale.ID])
	assert.False(t, store.blocked[fresh.ID])
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "stale@dojo.test", mailer.sent[0].to)
	assert.Equal(t, "Account Blocked - Overdue Payments", mailer.sent[0].subject)

	// status payment sendiri tidak pernah diubah oleh sweep
	for _, p := range store.payments {
		assert.Equal(t, paymentModel.PaymentStatusPending, p.Status)
	}
}

// Skenario end-to-end spec: payment due hari ini tidak memblokir; setelah
// due date digeser melewati threshold, sweep berikutnya memblokir.
func TestBlockOverdueAccountsThresholdProgression(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	student := newStudent("s@dojo.test", userModel.Plan3Classes)
	store.students = []userModel.UserModel{student}
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	store.payments = []paymentModel.PaymentModel{
		{StudentID: student.ID, Status: paymentModel.PaymentStatusPending, DueDate: now},
	}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.BlockOverdueAccounts(now))
	assert.False(t, store.blocked[student.ID], "due hari ini terlalu baru untuk diblokir")

	store.payments[0].DueDate = now.AddDate(0, -2, -1)
	require.NoError(t, svc.BlockOverdueAccounts(now))
	assert.True(t, store.blocked[student.ID])
}

// Sweep ulang terhadap kondisi yang masih berlaku kirim email lagi;
// sweep tidak menandai payment yang sudah dinotifikasi.
func TestBlockOverdueAccountsRenotifiesOnEveryRun(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	student := newStudent("s@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{student}
	now := time.Now()

	store.payments = []paymentModel.PaymentModel{
		{StudentID: student.ID, Status: paymentModel.PaymentStatusPending, DueDate: now.AddDate(0, -3, 0)},
	}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.BlockOverdueAccounts(now))
	require.NoError(t, svc.BlockOverdueAccounts(now))

	assert.Len(t, mailer.sent, 2)
}

func TestBlockOverdueAccountsIsolatesBlockFailures(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	broken := newStudent("broken@dojo.test", userModel.Plan2Classes)
	ok := newStudent("ok@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{broken, ok}
	now := time.Now()

	store.payments = []paymentModel.PaymentModel{
		{StudentID: broken.ID, Status: paymentModel.PaymentStatusPending, DueDate: now.AddDate(0, -3, 0)},
		{StudentID: ok.ID, Status: paymentModel.PaymentStatusPending, DueDate: now.AddDate(0, -3, 0)},
	}
	store.blockErrFor[broken.ID] = errors.New("db timeout")

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.BlockOverdueAccounts(now))

	assert.True(t, store.blocked[ok.ID])
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ok@dojo.test", mailer.sent[0].to)
}

/* ===============================
   SendUpcomingReminders
=================================*/

func TestSendUpcomingReminders(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	soon := newStudent("soon@dojo.test", userModel.Plan2Classes)
	far := newStudent("far@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{soon, far}
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	store.payments = []paymentModel.PaymentModel{
		{StudentID: soon.ID, Status: paymentModel.PaymentStatusPending, Amount: 14.99, DueDate: now.AddDate(0, 0, 3)},
		{StudentID: far.ID, Status: paymentModel.PaymentStatusPending, Amount: 14.99, DueDate: now.AddDate(0, 0, 20)},
	}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.SendUpcomingReminders(now))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "soon@dojo.test", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "$14.99")
	assert.Contains(t, mailer.sent[0].body, "06/04/2026")

	// reminder tidak memutasi apa pun
	assert.Empty(t, store.blocked)
	assert.Equal(t, paymentModel.PaymentStatusPending, store.payments[0].Status)
}

func TestSendUpcomingRemindersSkipsPaid(t *testing.T) {
	store := newFakeStore()
	mailer := newFakeMailer()
	student := newStudent("s@dojo.test", userModel.Plan2Classes)
	store.students = []userModel.UserModel{student}
	now := time.Now()
	paidAt := now.Add(-time.Hour)

	store.payments = []paymentModel.PaymentModel{
		{StudentID: student.ID, Status: paymentModel.PaymentStatusPaid, PaidDate: &paidAt, DueDate: now.AddDate(0, 0, 2)},
	}

	svc := NewBillingService(store, mailer)
	require.NoError(t, svc.SendUpcomingReminders(now))

	assert.Empty(t, mailer.sent)
}
