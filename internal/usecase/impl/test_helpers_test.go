package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"coursecart/config"
	"coursecart/internal/domain/entity"
	"coursecart/internal/domain/repository"
	"coursecart/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory fakes for the repository and service interfaces. They implement
// the same conditional-write semantics as the real postgres layer so the
// settlement races can be exercised without a database.

type fakeTxManager struct {
	factory repository.RepositoryFactory
	execErr error
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.execErr != nil {
		return m.execErr
	}

	return fn(m.factory)
}

type fakeRepoFactory struct {
	userRepo       *fakeUserRepo
	authRepo       *fakeAuthRepo
	orderRepo      *fakeOrderRepo
	enrollmentRepo *fakeEnrollmentRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository             { return f.userRepo }
func (f *fakeRepoFactory) AuthRepo() repository.AuthRepository             { return f.authRepo }
func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository           { return f.orderRepo }
func (f *fakeRepoFactory) EnrollmentRepo() repository.EnrollmentRepository { return f.enrollmentRepo }

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	profiles  map[uuid.UUID]*entity.BuyerProfile
	upsertErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]*entity.User),
		profiles: make(map[uuid.UUID]*entity.BuyerProfile),
	}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) UpsertBuyerProfile(_ context.Context, profile *entity.BuyerProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile

	return nil
}

func (r *fakeUserRepo) FindBuyerProfile(_ context.Context, userID uuid.UUID) (*entity.BuyerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return profile, nil
}

type fakeAuthRepo struct {
	mu    sync.Mutex
	creds map[string]*entity.Authentication
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{creds: make(map[string]*entity.Authentication)}
}

func (r *fakeAuthRepo) FindAuthentication(_ context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auth, ok := r.creds[provider+"/"+providerUserID]
	if !ok {
		return nil, repository.ErrAuthNotFound
	}

	return auth, nil
}

func (r *fakeAuthRepo) CreateAuthentication(_ context.Context, auth *entity.Authentication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if auth.ID == uuid.Nil {
		auth.ID = uuid.New()
	}
	r.creds[auth.Provider+"/"+auth.ProviderUserID] = auth

	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	createErr error
	updateErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			copied := *order

			return &copied, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByBuyer(_ context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []*entity.Order
	for _, order := range r.orders {
		if order.BuyerID != nil && *order.BuyerID == buyerID {
			copied := *order
			orders = append(orders, &copied)
		}
	}

	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatusFromPending(_ context.Context, orderID uuid.UUID, status entity.PaymentStatus, externalRef string) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.PaymentStatus != entity.PaymentStatusPending {
		return repository.ErrStatusConflict
	}

	order.PaymentStatus = status
	if externalRef != "" {
		order.ExternalPaymentRef = externalRef
	}
	order.UpdatedAt = time.Now()

	return nil
}

type fakeEnrollmentRepo struct {
	mu      sync.Mutex
	records []*entity.EnrollmentRecord
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{}
}

func (r *fakeEnrollmentRepo) CreateBatch(_ context.Context, records []*entity.EnrollmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)

	return nil
}

func (r *fakeEnrollmentRepo) FindByBuyer(_ context.Context, buyerID uuid.UUID) ([]*entity.EnrollmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.EnrollmentRecord
	for _, record := range r.records {
		if record.BuyerID == buyerID {
			out = append(out, record)
		}
	}

	return out, nil
}

func (r *fakeEnrollmentRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]*entity.EnrollmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.EnrollmentRecord
	for _, record := range r.records {
		if record.OrderID == orderID {
			out = append(out, record)
		}
	}

	return out, nil
}

type fakeGateway struct {
	mu          sync.Mutex
	sessionErr  error
	verifyErr   error
	verdict     service.VerdictStatus
	amountMinor int64
	paymentRef  string
	verifyCalls int
	onVerify    func() // runs during verification, before the verdict returns
}

func (g *fakeGateway) CreatePaymentSession(_ context.Context, input service.CreateSessionInput) (*service.Session, error) {
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}

	return &service.Session{
		SessionID:      "sess-" + input.OrderNumber,
		RedirectTarget: "https://pay.example.com/" + input.OrderNumber,
	}, nil
}

func (g *fakeGateway) VerifyPayment(_ context.Context, _ string) (*service.VerifyResult, error) {
	g.mu.Lock()
	g.verifyCalls++
	g.mu.Unlock()

	if g.onVerify != nil {
		g.onVerify()
	}

	if g.verifyErr != nil {
		return nil, g.verifyErr
	}

	return &service.VerifyResult{
		Status:      g.verdict,
		AmountMinor: g.amountMinor,
		PaymentRef:  g.paymentRef,
	}, nil
}

type fakeCatalog struct{}

func (fakeCatalog) ResolveTitle(courseID string) string {
	return "Title of " + courseID
}

// checkoutFixture bundles a checkout service with the fakes behind it.
type checkoutFixture struct {
	service     *checkoutService
	userRepo    *fakeUserRepo
	orderRepo   *fakeOrderRepo
	enrollments *fakeEnrollmentRepo
	gateway     *fakeGateway
}

func newCheckoutFixture() *checkoutFixture {
	userRepo := newFakeUserRepo()
	orderRepo := newFakeOrderRepo()
	enrollments := newFakeEnrollmentRepo()
	gateway := &fakeGateway{verdict: service.VerdictSuccess, paymentRef: "pay-ref-1"}
	factory := &fakeRepoFactory{
		userRepo:       userRepo,
		authRepo:       newFakeAuthRepo(),
		orderRepo:      orderRepo,
		enrollmentRepo: enrollments,
	}

	cfg := newServiceTestConfig()
	svc := NewCheckoutService(CheckoutServiceParams{
		TxManager: &fakeTxManager{factory: factory},
		OrderRepo: orderRepo,
		Gateway:   gateway,
		Catalog:   fakeCatalog{},
		Config:    cfg,
		Logger:    slog.New(slog.DiscardHandler),
	}).(*checkoutService)

	return &checkoutFixture{
		service:     svc,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		enrollments: enrollments,
		gateway:     gateway,
	}
}

func newServiceTestConfig() *config.Config {
	cfg := &config.Config{
		Pricing: &config.PricingConfig{
			TaxRateBasisPoints: 1800,
			Currency:           "INR",
		},
		PaymentGateway: &config.PaymentGatewayConfig{
			Provider:  "stub",
			ReturnURL: "https://shop.example.com/checkout/confirm",
			Timeout:   time.Second,
		},
	}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	return cfg
}
