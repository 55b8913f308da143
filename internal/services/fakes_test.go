package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hospilog/internal/models/db_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

// ---------- generic in-memory table ----------

type memTable[T any] struct {
	rows map[uuid.UUID]T
	id   func(*T) *uuid.UUID
}

func newTable[T any](id func(*T) *uuid.UUID) *memTable[T] {
	return &memTable[T]{rows: map[uuid.UUID]T{}, id: id}
}

func (t *memTable[T]) clone() map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

func (t *memTable[T]) List(context.Context) ([]T, error) {
	keys := make([]uuid.UUID, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.rows[k])
	}
	return out, nil
}

func (t *memTable[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *memTable[T]) LockByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return t.FindByID(ctx, id)
}

func (t *memTable[T]) Create(_ context.Context, e *T) error {
	id := t.id(e)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	t.rows[*id] = *e
	return nil
}

func (t *memTable[T]) Save(_ context.Context, e *T) error {
	t.rows[*t.id(e)] = *e
	return nil
}

func (t *memTable[T]) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := t.rows[id]; !ok {
		return false, nil
	}
	delete(t.rows, id)
	return true, nil
}

// ---------- store + transactor ----------

type memDB struct {
	accounts     *memTable[db_models.Account]
	orders       *memTable[db_models.Order]
	shipments    *memTable[db_models.Shipment]
	vehicles     *memTable[db_models.Vehicle]
	products     *memTable[db_models.Product]
	certificates *memTable[db_models.Certificate]
	invoices     *memTable[db_models.Invoice]
}

func newMemDB() *memDB {
	return &memDB{
		accounts:     newTable(func(a *db_models.Account) *uuid.UUID { return &a.ID }),
		orders:       newTable(func(o *db_models.Order) *uuid.UUID { return &o.ID }),
		shipments:    newTable(func(s *db_models.Shipment) *uuid.UUID { return &s.ID }),
		vehicles:     newTable(func(v *db_models.Vehicle) *uuid.UUID { return &v.ID }),
		products:     newTable(func(p *db_models.Product) *uuid.UUID { return &p.ID }),
		certificates: newTable(func(c *db_models.Certificate) *uuid.UUID { return &c.ID }),
		invoices:     newTable(func(i *db_models.Invoice) *uuid.UUID { return &i.ID }),
	}
}

type memSnapshot struct {
	accounts     map[uuid.UUID]db_models.Account
	orders       map[uuid.UUID]db_models.Order
	shipments    map[uuid.UUID]db_models.Shipment
	vehicles     map[uuid.UUID]db_models.Vehicle
	products     map[uuid.UUID]db_models.Product
	certificates map[uuid.UUID]db_models.Certificate
	invoices     map[uuid.UUID]db_models.Invoice
}

func (m *memDB) snapshot() memSnapshot {
	return memSnapshot{
		accounts:     m.accounts.clone(),
		orders:       m.orders.clone(),
		shipments:    m.shipments.clone(),
		vehicles:     m.vehicles.clone(),
		products:     m.products.clone(),
		certificates: m.certificates.clone(),
		invoices:     m.invoices.clone(),
	}
}

func (m *memDB) restore(s memSnapshot) {
	m.accounts.rows = s.accounts
	m.orders.rows = s.orders
	m.shipments.rows = s.shipments
	m.vehicles.rows = s.vehicles
	m.products.rows = s.products
	m.certificates.rows = s.certificates
	m.invoices.rows = s.invoices
}

// fakeTx rolls the whole store back when fn fails.
type fakeTx struct {
	db      *memDB
	commits int
}

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.db.snapshot()
	if err := fn(ctx); err != nil {
		t.db.restore(snap)
		return err
	}
	t.commits++
	return nil
}

// ---------- repositories ----------

type fakeAccounts struct {
	*memTable[db_models.Account]
}

func (f fakeAccounts) Create(ctx context.Context, a *db_models.Account) error {
	if found, _ := f.FindByEmail(ctx, a.Email); found != nil {
		return utils.ErrAccountExists
	}
	return f.memTable.Create(ctx, a)
}

func (f fakeAccounts) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	return f.FindByID(ctx, id)
}

func (f fakeAccounts) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	for _, a := range f.rows {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (f fakeAccounts) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f fakeAccounts) UpdatePassword(ctx context.Context, email, currentHash, newHash string) (bool, error) {
	a, _ := f.FindByEmail(ctx, email)
	if a == nil || a.PasswordHash != currentHash {
		return false, nil
	}
	a.PasswordHash = newHash
	f.rows[a.ID] = *a
	return true, nil
}

func (f fakeAccounts) SetVerified(_ context.Context, id uuid.UUID, verified bool) (bool, error) {
	a, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	a.IsVerified = verified
	f.rows[id] = a
	return true, nil
}

type fakeOrders struct {
	*memTable[db_models.Order]
	failSaveFor uuid.UUID
}

func (f *fakeOrders) Save(ctx context.Context, o *db_models.Order) error {
	if o.ID == f.failSaveFor {
		return errors.New("connection reset")
	}
	return f.memTable.Save(ctx, o)
}

func (f *fakeOrders) Search(ctx context.Context, filter repositories.OrderFilter) ([]db_models.Order, error) {
	all, _ := f.List(ctx)
	var out []db_models.Order
	for _, o := range all {
		if filter.AccountID != nil && o.AccountID != *filter.AccountID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ShipmentID != nil && (o.ShipmentID == nil || *o.ShipmentID != *filter.ShipmentID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) FindByShipment(ctx context.Context, id uuid.UUID) ([]db_models.Order, error) {
	return f.Search(ctx, repositories.OrderFilter{ShipmentID: &id})
}

type fakeShipments struct {
	*memTable[db_models.Shipment]
}

func (f fakeShipments) FindWithOrders(ctx context.Context, id uuid.UUID) (*db_models.Shipment, error) {
	return f.FindByID(ctx, id)
}

func (f fakeShipments) FindByIDs(_ context.Context, ids []uuid.UUID) ([]db_models.Shipment, error) {
	var out []db_models.Shipment
	for _, id := range ids {
		if s, ok := f.rows[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f fakeShipments) UpdateStatus(_ context.Context, id uuid.UUID, status db_models.ShipmentStatus) error {
	s := f.rows[id]
	s.Status = status
	f.rows[id] = s
	return nil
}

type fakeVehicles struct {
	*memTable[db_models.Vehicle]
}

func (f fakeVehicles) SetStatus(_ context.Context, id uuid.UUID, status db_models.VehicleStatus) error {
	v := f.rows[id]
	v.Status = status
	f.rows[id] = v
	return nil
}

// ---------- collaborators ----------

type sentMail struct {
	To, Kind, Payload string
}

type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
	cfg  SMTPConfig
}

func (m *fakeMail) record(to, kind, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Kind: kind, Payload: payload})
	return nil
}

func (m *fakeMail) SendOtpCode(to, code string, _ time.Duration) error {
	return m.record(to, "otp", code)
}

func (m *fakeMail) SendMailToResetPassword(to, token string) error {
	return m.record(to, "reset", token)
}

func (m *fakeMail) SendMailToNotifyUser(to, subject, _, _, _ string) error {
	return m.record(to, "notify", subject)
}

func (m *fakeMail) Settings() SMTPConfig { return m.cfg }

func (m *fakeMail) UpdateSettings(cfg SMTPConfig) error {
	m.cfg = cfg
	return nil
}

func (m *fakeMail) lastOTP() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Kind == "otp" {
			return m.sent[i].Payload
		}
	}
	return ""
}

type recordingPublisher struct {
	events []LifecycleEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt LifecycleEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// ---------- fixture ----------

type fixture struct {
	db        *memDB
	tx        *fakeTx
	accounts  fakeAccounts
	orders    *fakeOrders
	shipments fakeShipments
	vehicles  fakeVehicles
	mail      *fakeMail
	events    *recordingPublisher
	clock     *fakeClock
	logger    *zap.Logger
}

func newFixture() *fixture {
	db := newMemDB()
	return &fixture{
		db:        db,
		tx:        &fakeTx{db: db},
		accounts:  fakeAccounts{db.accounts},
		orders:    &fakeOrders{memTable: db.orders},
		shipments: fakeShipments{db.shipments},
		vehicles:  fakeVehicles{db.vehicles},
		mail:      &fakeMail{},
		events:    &recordingPublisher{},
		clock:     &fakeClock{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
		logger:    zap.NewNop(),
	}
}

func (f *fixture) tokens() TokenServiceInterface {
	svc, err := NewTokenService(TokenConfig{
		Secret:        []byte("0123456789abcdef0123456789abcdef"),
		EncryptionKey: []byte("fedcba9876543210fedcba9876543210"),
		Issuer:        "next-nexus-app",
		Audience:      "auth-service",
		StepUpTTL:     5 * time.Minute,
		SessionTTL:    30 * 24 * time.Hour,
		ResetTTL:      5 * time.Minute,
		Now:           f.clock.Now,
	})
	if err != nil {
		panic(err)
	}
	return svc
}

func (f *fixture) addAccount(role db_models.Role) db_models.Account {
	a := db_models.Account{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Name:      string(role) + " user",
		Email:     uuid.NewString()[:8] + "@hospital.test",
		Role:      role,
	}
	f.db.accounts.rows[a.ID] = a
	return a
}

func (f *fixture) addOrder(supplier uuid.UUID, status db_models.OrderStatus) db_models.Order {
	o := db_models.Order{
		BaseModel:   db_models.BaseModel{ID: uuid.New()},
		AccountID:   supplier,
		Destination: "Ward 3",
		Status:      status,
	}
	switch status {
	case db_models.OrderVerified:
		o.IsVerified = true
	case db_models.OrderConfirmed, db_models.OrderShipped, db_models.OrderDelivered:
		o.IsVerified, o.VendorConfirmed = true, true
	}
	f.db.orders.rows[o.ID] = o
	return o
}

func (f *fixture) addVehicle(status db_models.VehicleStatus) db_models.Vehicle {
	v := db_models.Vehicle{
		BaseModel:  db_models.BaseModel{ID: uuid.New()},
		DriverName: "R. Okafor",
		Status:     status,
	}
	f.db.vehicles.rows[v.ID] = v
	return v
}

func (f *fixture) order(id uuid.UUID) db_models.Order {
	return f.db.orders.rows[id]
}
