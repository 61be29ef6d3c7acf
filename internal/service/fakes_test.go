package service

import (
	"context"
	"time"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/repository/contract"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"
	"procureflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// nopLogger discards everything; tests assert on behavior, not log lines.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }


// recordingAudit captures Record calls for assertion.
type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Record(ctx context.Context, userId *uuid.UUID, action, resourceType string, resourceId *uuid.UUID, changes map[string]interface{}) {
	a.actions = append(a.actions, action)
}

func (a *recordingAudit) List(ctx context.Context, query *dto.ListAuditLogsQuery) (*dto.AuditLogListResponse, error) {
	return nil, nil
}

// recordingPublisher captures published domain events.
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

// byIDFrom extracts the ID filter from a spec list, if present.
func byIDFrom(specs []specification.Specification) (uuid.UUID, bool) {
	for _, sp := range specs {
		if s, ok := sp.(specification.ByID); ok {
			return s.ID, true
		}
	}
	return uuid.Nil, false
}

type fakePaymentRepo struct {
	payments        map[uuid.UUID]*entity.Payment
	updates         int
	recentSamePayee int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	cp := *p
	r.payments[p.Id] = &cp
	return nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	cp := *p
	r.payments[p.Id] = &cp
	r.updates++
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	if id, ok := byIDFrom(specs); ok {
		if p, ok := r.payments[id]; ok {
			cp := *p
			return &cp, nil
		}
		return nil, nil
	}
	for _, p := range r.payments {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if p, ok := r.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	out := make([]*entity.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePaymentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.payments)), nil
}

func (r *fakePaymentRepo) SumAmount(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (r *fakePaymentRepo) CountRecentByPayee(ctx context.Context, payee string, after time.Time, excludeId uuid.UUID) (int, error) {
	return r.recentSamePayee, nil
}

type fakeRoleRepo struct {
	roles map[uuid.UUID]*entity.Role
	// perms backs ReplacePermissions lookups.
	perms map[uuid.UUID]entity.Permission
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles: make(map[uuid.UUID]*entity.Role),
		perms: make(map[uuid.UUID]entity.Permission),
	}
}

func (r *fakeRoleRepo) Create(ctx context.Context, role *entity.Role) error {
	cp := *role
	r.roles[role.Id] = &cp
	return nil
}

func (r *fakeRoleRepo) Update(ctx context.Context, role *entity.Role) error {
	if existing, ok := r.roles[role.Id]; ok {
		role.Permissions = existing.Permissions
	}
	cp := *role
	r.roles[role.Id] = &cp
	return nil
}

func (r *fakeRoleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Role, error) {
	if id, ok := byIDFrom(specs); ok {
		if role, ok := r.roles[id]; ok {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Role, error) {
	out := make([]*entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		cp := *role
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRoleRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.roles)), nil
}

func (r *fakeRoleRepo) ReplacePermissions(ctx context.Context, roleId uuid.UUID, permissionIds []uuid.UUID) error {
	role, ok := r.roles[roleId]
	if !ok {
		return nil
	}
	role.Permissions = nil
	for _, pid := range permissionIds {
		if p, ok := r.perms[pid]; ok {
			role.Permissions = append(role.Permissions, p)
		}
	}
	return nil
}

func (r *fakeRoleRepo) CountUsers(ctx context.Context, roleId uuid.UUID) (int64, error) {
	return 0, nil
}

type fakePermissionRepo struct {
	perms []entity.Permission
}

func (r *fakePermissionRepo) Create(ctx context.Context, p *entity.Permission) error {
	r.perms = append(r.perms, *p)
	return nil
}

func (r *fakePermissionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Permission, error) {
	if len(r.perms) == 0 {
		return nil, nil
	}
	return &r.perms[0], nil
}

func (r *fakePermissionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Permission, error) {
	out := make([]*entity.Permission, len(r.perms))
	for i := range r.perms {
		out[i] = &r.perms[i]
	}
	return out, nil
}

func (r *fakePermissionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.perms)), nil
}

type fakeFraudAlertRepo struct {
	rows map[uuid.UUID]*entity.FraudAlert
}

func newFakeFraudAlertRepo() *fakeFraudAlertRepo {
	return &fakeFraudAlertRepo{rows: make(map[uuid.UUID]*entity.FraudAlert)}
}

func (r *fakeFraudAlertRepo) Create(ctx context.Context, a *entity.FraudAlert) error {
	cp := *a
	r.rows[a.Id] = &cp
	return nil
}

func (r *fakeFraudAlertRepo) Update(ctx context.Context, a *entity.FraudAlert) error {
	cp := *a
	r.rows[a.Id] = &cp
	return nil
}

func (r *fakeFraudAlertRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FraudAlert, error) {
	if id, ok := byIDFrom(specs); ok {
		if a, ok := r.rows[id]; ok {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFraudAlertRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FraudAlert, error) {
	out := make([]*entity.FraudAlert, 0, len(r.rows))
	for _, a := range r.rows {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFraudAlertRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	return r.logs, nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.logs)), nil
}

type fakeSequenceRepo struct {
	next int64
}

func (r *fakeSequenceRepo) Next(ctx context.Context, prefix string, year int) (int64, error) {
	r.next++
	return r.next, nil
}

type fakeProcurementRepo struct {
	rows map[uuid.UUID]*entity.Procurement
}

func newFakeProcurementRepo() *fakeProcurementRepo {
	return &fakeProcurementRepo{rows: make(map[uuid.UUID]*entity.Procurement)}
}

func (r *fakeProcurementRepo) Create(ctx context.Context, p *entity.Procurement) error {
	cp := *p
	r.rows[p.Id] = &cp
	return nil
}

func (r *fakeProcurementRepo) Update(ctx context.Context, p *entity.Procurement) error {
	cp := *p
	r.rows[p.Id] = &cp
	return nil
}

func (r *fakeProcurementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeProcurementRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Procurement, error) {
	if id, ok := byIDFrom(specs); ok {
		if p, ok := r.rows[id]; ok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProcurementRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Procurement, error) {
	out := make([]*entity.Procurement, 0, len(r.rows))
	for _, p := range r.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProcurementRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakePurchaseRequestRepo struct {
	rows map[uuid.UUID]*entity.PurchaseRequest
}

func newFakePurchaseRequestRepo() *fakePurchaseRequestRepo {
	return &fakePurchaseRequestRepo{rows: make(map[uuid.UUID]*entity.PurchaseRequest)}
}

func (r *fakePurchaseRequestRepo) Create(ctx context.Context, p *entity.PurchaseRequest) error {
	cp := *p
	r.rows[p.Id] = &cp
	return nil
}

func (r *fakePurchaseRequestRepo) Update(ctx context.Context, p *entity.PurchaseRequest) error {
	cp := *p
	r.rows[p.Id] = &cp
	return nil
}

func (r *fakePurchaseRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func (r *fakePurchaseRequestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PurchaseRequest, error) {
	if id, ok := byIDFrom(specs); ok {
		if p, ok := r.rows[id]; ok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRequestRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PurchaseRequest, error) {
	out := make([]*entity.PurchaseRequest, 0, len(r.rows))
	for _, p := range r.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePurchaseRequestRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

type fakeNotificationRepo struct {
	rows []*entity.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	cp := *n
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeNotificationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error) {
	if len(r.rows) == 0 {
		return nil, nil
	}
	return r.rows[0], nil
}

func (r *fakeNotificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	return r.rows, nil
}

func (r *fakeNotificationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeUow serves the in-memory repositories to the services under test.
// Repositories a test never touches stay nil.
type fakeUow struct {
	payments         *fakePaymentRepo
	roles            *fakeRoleRepo
	permissions      *fakePermissionRepo
	fraudAlerts      *fakeFraudAlertRepo
	audits           *fakeAuditRepo
	sequences        *fakeSequenceRepo
	procurements     *fakeProcurementRepo
	purchaseRequests *fakePurchaseRequestRepo
	notifications    *fakeNotificationRepo

	begun      int
	committed  int
	rolledBack int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		payments:         newFakePaymentRepo(),
		roles:            newFakeRoleRepo(),
		permissions:      &fakePermissionRepo{},
		fraudAlerts:      newFakeFraudAlertRepo(),
		audits:           &fakeAuditRepo{},
		sequences:        &fakeSequenceRepo{},
		procurements:     newFakeProcurementRepo(),
		purchaseRequests: newFakePurchaseRequestRepo(),
		notifications:    &fakeNotificationRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error                   { u.committed++; return nil }
func (u *fakeUow) Rollback() error                 { u.rolledBack++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository             { return nil }
func (u *fakeUow) RoleRepository() contract.RoleRepository             { return u.roles }
func (u *fakeUow) PermissionRepository() contract.PermissionRepository { return u.permissions }
func (u *fakeUow) PaymentRepository() contract.PaymentRepository       { return u.payments }
func (u *fakeUow) FraudAlertRepository() contract.FraudAlertRepository { return u.fraudAlerts }
func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository     { return u.audits }
func (u *fakeUow) ProcurementRepository() contract.ProcurementRepository {
	return u.procurements
}
func (u *fakeUow) PurchaseRequestRepository() contract.PurchaseRequestRepository {
	return u.purchaseRequests
}
func (u *fakeUow) RevenueRepository() contract.RevenueRepository { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository {
	return u.notifications
}
func (u *fakeUow) AttachmentRepository() contract.AttachmentRepository { return nil }
func (u *fakeUow) SequenceRepository() contract.SequenceRepository     { return u.sequences }

// fakeFactory hands every service call the same unit of work so tests can
// assert against its state afterwards.
type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)
