package service

import (
	"context"
	"errors"
	"testing"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newPurchaseRequestFixture() (IPurchaseRequestService, *fakeUow, *recordingAudit, *recordingPublisher) {
	uow := newFakeUow()
	audit := &recordingAudit{}
	publisher := &recordingPublisher{}
	svc := NewPurchaseRequestService(&fakeFactory{uow: uow}, audit, publisher, nopLogger{})
	return svc, uow, audit, publisher
}

func seedPurchaseRequest(uow *fakeUow, status entity.PurchaseRequestStatus, requestedBy uuid.UUID) *entity.PurchaseRequest {
	r := &entity.PurchaseRequest{
		Id:            uuid.New(),
		RequestNumber: "PR-2026-0001",
		Title:         "Laptops for field team",
		Amount:        decimal.RequireFromString("4200.00"),
		Status:        status,
		RequestedBy:   requestedBy,
	}
	uow.purchaseRequests.rows[r.Id] = r
	return r
}

func TestPurchaseRequestSubmit(t *testing.T) {
	svc, uow, _, publisher := newPurchaseRequestFixture()
	requester := uuid.New()
	r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusDraft, requester)

	res, err := svc.Submit(context.Background(), r.Id, requester)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if res.Status != "pending" {
		t.Errorf("Status = %q, want pending", res.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0].EventType() != events.TypePurchaseSubmitted {
		t.Errorf("expected PURCHASE_REQUEST_SUBMITTED event, got %+v", publisher.published)
	}
}

func TestPurchaseRequestSubmitOnlyByRequester(t *testing.T) {
	svc, uow, _, _ := newPurchaseRequestFixture()
	r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusDraft, uuid.New())

	_, err := svc.Submit(context.Background(), r.Id, uuid.New())
	if _, ok := apperr.IsPermissionDenied(err); !ok {
		t.Fatalf("error = %v, want PermissionDeniedError", err)
	}
}

func TestPurchaseRequestSubmitRequiresDraft(t *testing.T) {
	svc, uow, _, _ := newPurchaseRequestFixture()
	requester := uuid.New()
	r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusPending, requester)

	_, err := svc.Submit(context.Background(), r.Id, requester)
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
}

func TestPurchaseRequestDecide(t *testing.T) {
	tests := []struct {
		name       string
		approve    bool
		wantStatus string
		wantAction string
	}{
		{"approve", true, "approved", entity.AuditActionApprove},
		{"reject", false, "rejected", entity.AuditActionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, uow, audit, publisher := newPurchaseRequestFixture()
			r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusPending, uuid.New())
			approver := uuid.New()

			res, err := svc.Decide(context.Background(), r.Id, approver, &dto.DecidePurchaseRequestRequest{
				Approve: tt.approve,
				Note:    "reviewed against budget",
			})
			if err != nil {
				t.Fatalf("Decide error: %v", err)
			}

			if res.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", res.Status, tt.wantStatus)
			}
			if res.DecidedBy == nil || *res.DecidedBy != approver {
				t.Errorf("DecidedBy = %v, want the approver", res.DecidedBy)
			}
			if len(audit.actions) != 1 || audit.actions[0] != tt.wantAction {
				t.Errorf("audit actions = %v, want [%s]", audit.actions, tt.wantAction)
			}
			if len(publisher.published) != 1 || publisher.published[0].EventType() != events.TypePurchaseDecided {
				t.Errorf("expected PURCHASE_REQUEST_DECIDED event, got %+v", publisher.published)
			}
		})
	}
}

func TestPurchaseRequestDecideNotBySelf(t *testing.T) {
	svc, uow, _, _ := newPurchaseRequestFixture()
	requester := uuid.New()
	r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusPending, requester)

	_, err := svc.Decide(context.Background(), r.Id, requester, &dto.DecidePurchaseRequestRequest{Approve: true})
	pd, ok := apperr.IsPermissionDenied(err)
	if !ok {
		t.Fatalf("error = %v, want PermissionDeniedError", err)
	}
	if pd.Resource != "purchase_requests" || pd.Action != "approve" {
		t.Errorf("denial carries %s:%s, want purchase_requests:approve", pd.Resource, pd.Action)
	}
}

func TestPurchaseRequestDecideRequiresPending(t *testing.T) {
	svc, uow, _, _ := newPurchaseRequestFixture()
	r := seedPurchaseRequest(uow, entity.PurchaseRequestStatusApproved, uuid.New())

	_, err := svc.Decide(context.Background(), r.Id, uuid.New(), &dto.DecidePurchaseRequestRequest{Approve: true})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
}

func TestPurchaseRequestDeleteOnlyDrafts(t *testing.T) {
	svc, uow, _, _ := newPurchaseRequestFixture()
	requester := uuid.New()

	draft := seedPurchaseRequest(uow, entity.PurchaseRequestStatusDraft, requester)
	if err := svc.Delete(context.Background(), draft.Id, requester); err != nil {
		t.Fatalf("Delete(draft) error: %v", err)
	}

	pending := seedPurchaseRequest(uow, entity.PurchaseRequestStatusPending, requester)
	if err := svc.Delete(context.Background(), pending.Id, requester); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("Delete(pending) error = %v, want ErrInvalidState", err)
	}
}
