package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Get(ctx context.Context, id int64) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Contact{}, id).Error
}

func (r *ContactRepository) ListByClient(ctx context.Context, clientID int64) ([]model.ContactDetail, error) {
	var rows []model.ContactDetail
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			co.*,
			c.name AS client_name,
			jt.title AS job_title_name
		FROM contacts co
		JOIN clients c ON c.id = co.client_id
		LEFT JOIN job_titles jt ON jt.id = co.job_title_id
		WHERE co.client_id = ?
		ORDER BY co.name ASC
	`, clientID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// NameHasOtherJobTitle reports whether the contact name already exists
// with a different job title, excluding the row being edited.
func (r *ContactRepository) NameHasOtherJobTitle(ctx context.Context, name string, jobTitleID *int64, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Table("contacts").Where("name = ?", name)
	if jobTitleID != nil {
		query = query.Where("job_title_id IS DISTINCT FROM ?", *jobTitleID)
	} else {
		query = query.Where("job_title_id IS NOT NULL")
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ContactRepository) CreateJobTitle(ctx context.Context, title *model.JobTitle) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *ContactRepository) ListJobTitles(ctx context.Context) ([]model.JobTitle, error) {
	var titles []model.JobTitle
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}
