package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/energyportfolio/crm-service/internal/model"
)

type ObjectionRepository struct {
	db *gorm.DB
}

func NewObjectionRepository(db *gorm.DB) *ObjectionRepository {
	return &ObjectionRepository{db: db}
}

func (r *ObjectionRepository) Get(ctx context.Context, id int64) (*model.Objection, error) {
	var objection model.Objection
	if err := r.db.WithContext(ctx).First(&objection, id).Error; err != nil {
		return nil, err
	}
	return &objection, nil
}

func (r *ObjectionRepository) Create(ctx context.Context, objection *model.Objection) error {
	return r.db.WithContext(ctx).Create(objection).Error
}

func (r *ObjectionRepository) Update(ctx context.Context, objection *model.Objection) error {
	return r.db.WithContext(ctx).Save(objection).Error
}

// List returns objections with joined names, optionally narrowed by status.
func (r *ObjectionRepository) List(ctx context.Context, status model.ObjectionStatus) ([]model.ObjectionDetail, error) {
	baseQuery := `
		SELECT
			o.*,
			c.name AS client_name,
			ns.supplier AS new_supplier_name,
			os.supplier AS objecting_supplier_name
		FROM objections o
		JOIN clients c ON c.id = o.client_id
		JOIN suppliers ns ON ns.id = o.new_supplier_id
		JOIN suppliers os ON os.id = o.objecting_supplier_id
	`
	args := []interface{}{}
	if status != "" {
		baseQuery += " WHERE o.objection_status = ?"
		args = append(args, status)
	}
	baseQuery += " ORDER BY o.id ASC"

	var rows []model.ObjectionDetail
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
