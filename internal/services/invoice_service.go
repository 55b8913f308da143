package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type InvoiceServiceInterface interface {
	List(ctx context.Context) ([]db_models.Invoice, error)
	Create(ctx context.Context, request request_models.CreateInvoiceRequest) (*db_models.Invoice, error)
	Update(ctx context.Context, request request_models.UpdateInvoiceRequest) (*db_models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	accountRepo repositories.AccountRepository
	tx          repositories.Transactor
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	accountRepo repositories.AccountRepository,
	tx repositories.Transactor,
) InvoiceServiceInterface {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		tx:          tx,
	}
}

func (i *InvoiceService) List(ctx context.Context) ([]db_models.Invoice, error) {
	invoices, err := i.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return invoices, nil
}

func (i *InvoiceService) Create(ctx context.Context, request request_models.CreateInvoiceRequest) (*db_models.Invoice, error) {
	if request.IssueDate.IsZero() {
		return nil, utils.Invalid("issueDate", "is required")
	}
	accountID, err := resolveAccount(ctx, i.accountRepo, request.AccountID)
	if err != nil {
		return nil, err
	}

	invoice := &db_models.Invoice{
		Number:    "INV-" + ulid.Make().String(),
		Amount:    request.Amount,
		Status:    request.Status,
		IssueDate: request.IssueDate,
		AccountID: accountID,
	}
	if err := i.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return invoice, nil
}

func (i *InvoiceService) Update(ctx context.Context, request request_models.UpdateInvoiceRequest) (*db_models.Invoice, error) {
	id, err := parseID(request.ID)
	if err != nil {
		return nil, err
	}

	var invoice *db_models.Invoice
	err = i.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err = i.invoiceRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock invoice: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if invoice == nil {
			return utils.NotFound("Invoice")
		}

		if request.AccountID != nil {
			accountID, err := resolveAccount(ctx, i.accountRepo, *request.AccountID)
			if err != nil {
				return err
			}
			invoice.AccountID = accountID
		}
		if request.Amount != nil {
			invoice.Amount = *request.Amount
		}
		if request.Status != nil {
			invoice.Status = *request.Status
		}
		if request.IssueDate != nil && !request.IssueDate.IsZero() {
			invoice.IssueDate = *request.IssueDate
		}

		if err := i.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("save invoice: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (i *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, i.invoiceRepo, id, "Invoice")
}
