package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type CertificateServiceInterface interface {
	List(ctx context.Context) ([]db_models.Certificate, error)
	Create(ctx context.Context, request request_models.CreateCertificateRequest) (*db_models.Certificate, error)
	Update(ctx context.Context, request request_models.UpdateCertificateRequest) (*db_models.Certificate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CertificateService struct {
	certRepo    repositories.CertificateRepository
	accountRepo repositories.AccountRepository
	tx          repositories.Transactor
}

func NewCertificateService(
	certRepo repositories.CertificateRepository,
	accountRepo repositories.AccountRepository,
	tx repositories.Transactor,
) CertificateServiceInterface {
	return &CertificateService{
		certRepo:    certRepo,
		accountRepo: accountRepo,
		tx:          tx,
	}
}

func (c *CertificateService) List(ctx context.Context) ([]db_models.Certificate, error) {
	certs, err := c.certRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return certs, nil
}

func checkCertificateDates(cert *db_models.Certificate) error {
	if cert.IssueDate.IsZero() {
		return utils.Invalid("issueDate", "is required")
	}
	if cert.ExpiryDate != nil && cert.ExpiryDate.Before(cert.IssueDate) {
		return utils.Invalid("expiryDate", "must not precede issueDate")
	}
	return nil
}

func (c *CertificateService) Create(ctx context.Context, request request_models.CreateCertificateRequest) (*db_models.Certificate, error) {
	accountID, err := resolveAccount(ctx, c.accountRepo, request.AccountID)
	if err != nil {
		return nil, err
	}

	cert := &db_models.Certificate{
		Name:        request.Name,
		IssuedBy:    request.IssuedBy,
		IssueDate:   request.IssueDate,
		ExpiryDate:  request.ExpiryDate,
		DocumentURL: request.DocumentURL,
		Status:      request.Status,
		AccountID:   accountID,
	}
	if err := checkCertificateDates(cert); err != nil {
		return nil, err
	}
	if err := c.certRepo.Create(ctx, cert); err != nil {
		return nil, fmt.Errorf("create certificate: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return cert, nil
}

// Update can move the certificate to another account; the account check and
// the write share one transaction.
func (c *CertificateService) Update(ctx context.Context, request request_models.UpdateCertificateRequest) (*db_models.Certificate, error) {
	id, err := parseID(request.ID)
	if err != nil {
		return nil, err
	}

	var cert *db_models.Certificate
	err = c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cert, err = c.certRepo.LockByID(ctx, id)
		if err != nil {
			return fmt.Errorf("lock certificate: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		if cert == nil {
			return utils.NotFound("Certificate")
		}

		if request.AccountID != nil {
			accountID, err := resolveAccount(ctx, c.accountRepo, *request.AccountID)
			if err != nil {
				return err
			}
			cert.AccountID = accountID
		}
		if request.Name != nil && *request.Name != "" {
			cert.Name = *request.Name
		}
		if request.IssuedBy != nil && *request.IssuedBy != "" {
			cert.IssuedBy = *request.IssuedBy
		}
		if request.IssueDate != nil {
			cert.IssueDate = *request.IssueDate
		}
		if request.ExpiryDate != nil {
			cert.ExpiryDate = request.ExpiryDate
		}
		if request.DocumentURL != nil {
			cert.DocumentURL = request.DocumentURL
		}
		if request.Status != nil {
			cert.Status = *request.Status
		}
		if err := checkCertificateDates(cert); err != nil {
			return err
		}

		if err := c.certRepo.Save(ctx, cert); err != nil {
			return fmt.Errorf("save certificate: %w", errors.Join(utils.ErrDatabaseError, err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

func (c *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, c.certRepo, id, "Certificate")
}
