package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/models"
)

// ClientService owns client registry reads and writes.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

type ClientInput struct {
	Name          string
	BusinessID    string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	Notes         string
}

// ClientPatch carries partial updates; nil fields are left unchanged.
type ClientPatch struct {
	Name          *string
	BusinessID    *string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
	Notes         *string
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	client := models.Client{
		Name:          in.Name,
		BusinessID:    in.BusinessID,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		Notes:         in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// List returns clients ordered by name, optionally filtered by a substring
// match on the name.
func (s *ClientService) List(ctx context.Context, search string, limit, offset int) ([]models.Client, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Client{})
	if search != "" {
		q = q.Where("lower(name) LIKE lower(?)", "%"+search+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var clients []models.Client
	if err := q.Order("name").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, patch ClientPatch) (*models.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.BusinessID != nil {
		updates["business_id"] = *patch.BusinessID
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.ContactPerson != nil {
		updates["contact_person"] = *patch.ContactPerson
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) == 0 {
		return client, nil
	}
	if err := s.db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return client, nil
}
