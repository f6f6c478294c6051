package iot

import (
	"context"

	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

func (i *IOT) upsertThresholds(ctx context.Context, helmetID string, input *models.Thresholds) error {
	logger := common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryThresholds)

	if err := requireKey("helmetId", helmetID); err != nil {
		return err
	}
	if input == nil {
		return common.NewValidationError("thresholds body is required", nil)
	}

	thresholds := models.Thresholds{
		TemperatureThreshold: input.TemperatureThreshold,
		HumidityThreshold:    input.HumidityThreshold,
		GasThreshold:         input.GasThreshold,
	}

	logger.Info("Received thresholds for helmet", zap.String("helmet_id", helmetID), zap.Reflect("thresholds", thresholds))

	if err := i.Store.Set(ctx, helmetChild(helmetID, "thresholds"), thresholds); err != nil {
		return upstream("saving helmet thresholds", err)
	}

	logger.Info("Upserted thresholds for helmet", zap.String("helmet_id", helmetID))
	return nil
}

func (i *IOT) getThresholds(ctx context.Context, helmetID string) (*models.Thresholds, error) {
	if err := requireKey("helmetId", helmetID); err != nil {
		return nil, err
	}
	var thresholds models.Thresholds
	found, err := rtdb.GetInto(ctx, i.Store, helmetChild(helmetID, "thresholds"), &thresholds)
	if err != nil {
		return nil, upstream("fetching helmet thresholds", err)
	}
	if !found {
		return nil, common.NewNotFoundError("No thresholds configured for this helmet")
	}
	return &thresholds, nil
}

type IThresholdsImpl struct {
	iot *IOT
}

func (it *IThresholdsImpl) UpsertThresholds(ctx context.Context, helmetID string, input *models.Thresholds) error {
	return it.iot.upsertThresholds(ctx, helmetID, input)
}

func (it *IThresholdsImpl) GetThresholds(ctx context.Context, helmetID string) (*models.Thresholds, error) {
	return it.iot.getThresholds(ctx, helmetID)
}

func (i *IOT) GetIThresholds() IThresholds {
	return &IThresholdsImpl{iot: i}
}
