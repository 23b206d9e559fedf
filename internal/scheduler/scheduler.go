package scheduler

import (
	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/service"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring maintenance jobs. For now that is the daily
// low stock scan.
type Scheduler struct {
	cron             *cron.Cron
	warehouseService service.WarehouseService
	threshold        int
}

func New(warehouseService service.WarehouseService, cfg *config.LoanConfig) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		warehouseService: warehouseService,
		threshold:        cfg.LowStockThreshold,
	}
}

// Start registers the jobs and kicks off the cron loop.
func (s *Scheduler) Start() error {
	// 06:00 server time, before the warehouse day begins
	_, err := s.cron.AddFunc("0 6 * * *", s.runLowStockScan)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Scheduler started", map[string]interface{}{
		"low_stock_threshold": s.threshold,
	})
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped", nil)
}

func (s *Scheduler) runLowStockScan() {
	records, err := s.warehouseService.ScanLowStock(s.threshold)
	if err != nil {
		logger.Error("Low stock scan failed", err, nil)
		return
	}

	logger.Info("Low stock scan finished", map[string]interface{}{
		"flagged": len(records),
	})
}
