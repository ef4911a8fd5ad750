package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/assettrack/config"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Asset.Site.Region").
		Preload("Technician", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "username", "email", "role", "full_name", "phone")
		})
}

func (r *InspectionRepository) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).Raw("SELECT nextval('" + config.InspectionNumberSequence + "')").Scan(&seq).Error; err != nil {
		return 0, translate("inspections.NextSequence", err)
	}
	return seq, nil
}

func (r *InspectionRepository) Create(ctx context.Context, in *models.Inspection) error {
	if err := r.db.WithContext(ctx).Omit("Asset", "Technician").Create(in).Error; err != nil {
		return translate("inspections.Create", err)
	}
	return nil
}

func (r *InspectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	var in models.Inspection
	if err := withRelations(r.db.WithContext(ctx)).First(&in, "inspecciones.id = ?", id).Error; err != nil {
		return nil, translate("inspections.FindByID", err)
	}
	return &in, nil
}

func (r *InspectionRepository) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]models.Inspection, error) {
	out := []models.Inspection{}
	err := withRelations(r.db.WithContext(ctx)).
		Where("asset_id = ?", assetID).
		Order("fecha_inspeccion DESC").
		Find(&out).Error
	if err != nil {
		return nil, translate("inspections.ListByAsset", err)
	}
	return out, nil
}

func (r *InspectionRepository) ListByTechnician(ctx context.Context, technicianID uuid.UUID, limit int) ([]models.Inspection, error) {
	out := []models.Inspection{}
	err := r.db.WithContext(ctx).
		Preload("Asset.Site").
		Where("technician_id = ?", technicianID).
		Order("fecha_inspeccion DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, translate("inspections.ListByTechnician", err)
	}
	return out, nil
}

func (r *InspectionRepository) ListPendingSync(ctx context.Context) ([]models.Inspection, error) {
	out := []models.Inspection{}
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("sincronizado = ?", false).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate("inspections.ListPendingSync", err)
	}
	return out, nil
}

func (r *InspectionRepository) ListForExport(ctx context.Context, assetID *uuid.UUID) ([]models.Inspection, error) {
	out := []models.Inspection{}
	q := withRelations(r.db.WithContext(ctx))
	if assetID != nil {
		q = q.Where("asset_id = ?", *assetID)
	}
	if err := q.Order("fecha_inspeccion DESC").Find(&out).Error; err != nil {
		return nil, translate("inspections.ListForExport", err)
	}
	return out, nil
}

func (r *InspectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InspectionStatus) error {
	return r.updateColumn(ctx, "inspections.UpdateStatus", id, "estado", status)
}

func (r *InspectionRepository) MarkSynced(ctx context.Context, id uuid.UUID) error {
	return r.updateColumn(ctx, "inspections.MarkSynced", id, "sincronizado", true)
}

func (r *InspectionRepository) updateColumn(ctx context.Context, op string, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&models.Inspection{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, op, "")
	}
	return nil
}

func (r *InspectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Inspection{}, "id = ?", id)
	if res.Error != nil {
		return translate("inspections.Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "inspections.Delete", "")
	}
	return nil
}
