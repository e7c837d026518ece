package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "pawnshop-backend/internal/adapter/http"
	"pawnshop-backend/internal/adapter/middleware"
	"pawnshop-backend/internal/adapter/repository/mysql"
	"pawnshop-backend/internal/config"
	"pawnshop-backend/internal/infrastructure/cache"
	"pawnshop-backend/internal/infrastructure/db"
	miniostorage "pawnshop-backend/internal/infrastructure/storage"
	activityUC "pawnshop-backend/internal/usecase/activity"
	contractUC "pawnshop-backend/internal/usecase/contract"
	loanUC "pawnshop-backend/internal/usecase/loan"
	"pawnshop-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger.Init(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	store, err := miniostorage.NewMinioStorage(&cfg.Minio)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatal(err)
	}
	slog.Info("document storage ready", "bucket", cfg.Minio.Bucket)

	loans := mysql.NewLoanRepository(gdb)
	files := mysql.NewFileRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUsecase := loanUC.NewUsecase(loans, store, tx)
	contractUsecase := contractUC.NewUsecase(loans, store, tx, cfg.Company)
	activityUsecase := activityUC.NewUsecase(loans, tx)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUsecase)
	ch := httpadp.NewContractHandler(contractUsecase)
	ah := httpadp.NewActivityHandler(activityUsecase)
	fh := httpadp.NewFileHandler(loanUsecase, files, store)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/files/*", fh.DownloadFile)

	api := e.Group("", middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	api.POST("/loans", lh.CreateLoan)
	api.GET("/loans", lh.ListLoans)
	api.GET("/loans/:loan_id", lh.GetLoan)
	api.POST("/loans/:loan_id/approve", lh.ApproveLoan)
	api.POST("/loans/:loan_id/disburse", lh.DisburseLoan)
	api.POST("/loans/:loan_id/reject", lh.RejectLoan)
	api.POST("/loans/:loan_id/redeem", lh.RedeemLoan)
	api.POST("/loans/:loan_id/liquidate", lh.LiquidateLoan)
	api.POST("/loans/:loan_id/payments", lh.RecordInterestPayment)
	api.PUT("/loans/:loan_id/condition", lh.UpdateAssetCondition)
	api.POST("/loans/:loan_id/activity", ah.PostMessage)
	api.GET("/loans/:loan_id/activity", ah.ListActivity)
	api.POST("/loans/:loan_id/contracts", ch.GenerateContracts)
	api.POST("/loans/:loan_id/contracts/regenerate", ch.RegenerateContracts)
	api.GET("/loans/:loan_id/contracts", ch.ListContracts)
	api.GET("/loans/:loan_id/contracts/:type/data", ch.FetchContractData)
	api.POST("/loans/:loan_id/attachments", fh.UploadAttachment)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
