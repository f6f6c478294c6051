package iot

import (
	"context"

	"go.uber.org/zap"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/analytics"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
)

func (i *IOT) analyticsSnapshot(ctx context.Context, countHelmets bool, action string) (analytics.Snapshot, error) {
	snap, err := i.loadAlertSnapshot(ctx, countHelmets)
	if err != nil {
		return analytics.Snapshot{}, upstream(action, err)
	}
	common.GetCategoryLogger(common.LoggerNameHelmetCore, common.LoggerCategoryAnalytics).Debug(
		"Loaded analytics snapshot",
		zap.Int("alerts", len(snap.alerts)),
		zap.Int("assignments", len(snap.assignments)),
		zap.Int("employees", len(snap.employees)),
		zap.Int("helmets", snap.helmetCount),
	)
	return analytics.Snapshot{
		Alerts:      snap.alerts,
		Assignments: snap.assignments,
		Employees:   snap.employees,
		HelmetCount: snap.helmetCount,
	}, nil
}

func (i *IOT) getOverview(ctx context.Context) (*analytics.Overview, error) {
	snap, err := i.analyticsSnapshot(ctx, true, "fetching overview analytics")
	if err != nil {
		return nil, err
	}
	overview := analytics.ComputeOverview(snap)
	return &overview, nil
}

func (i *IOT) getSafetyTrends(ctx context.Context) ([]analytics.TrendBucket, error) {
	snap, err := i.analyticsSnapshot(ctx, false, "fetching safety trends")
	if err != nil {
		return nil, err
	}
	return analytics.ComputeSafetyTrends(snap.Alerts, i.now(), i.location()), nil
}

func (i *IOT) getMinerPerformance(ctx context.Context) ([]analytics.MinerPerformance, error) {
	snap, err := i.analyticsSnapshot(ctx, false, "fetching miner performance")
	if err != nil {
		return nil, err
	}
	return analytics.ComputeMinerPerformance(snap), nil
}

type IAnalyticsImpl struct {
	iot *IOT
}

func (ia *IAnalyticsImpl) GetOverview(ctx context.Context) (*analytics.Overview, error) {
	return ia.iot.getOverview(ctx)
}

func (ia *IAnalyticsImpl) GetSafetyTrends(ctx context.Context) ([]analytics.TrendBucket, error) {
	return ia.iot.getSafetyTrends(ctx)
}

func (ia *IAnalyticsImpl) GetMinerPerformance(ctx context.Context) ([]analytics.MinerPerformance, error) {
	return ia.iot.getMinerPerformance(ctx)
}

func (i *IOT) GetIAnalytics() IAnalytics {
	return &IAnalyticsImpl{iot: i}
}
