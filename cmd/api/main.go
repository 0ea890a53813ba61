package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/timecheck-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/timecheck-hr/attendance-backend-go/internal/handler/http"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/database"
	"github.com/timecheck-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/timecheck-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/timecheck-hr/attendance-backend-go/internal/service/attendance"
	authService "github.com/timecheck-hr/attendance-backend-go/internal/service/auth"
	holidayService "github.com/timecheck-hr/attendance-backend-go/internal/service/holiday"
	justificationService "github.com/timecheck-hr/attendance-backend-go/internal/service/justification"
	reportService "github.com/timecheck-hr/attendance-backend-go/internal/service/report"
	scheduleService "github.com/timecheck-hr/attendance-backend-go/internal/service/schedule"
	workerService "github.com/timecheck-hr/attendance-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	loc := cfg.Location()

	workerRepo := postgresql.NewWorkerRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	toleranceRuleRepo := postgresql.NewToleranceRuleRepository(db)
	justificationRepo := postgresql.NewJustificationRepository(db)
	reasonRuleRepo := postgresql.NewReasonRuleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(jwtService, workerRepo)
	workerSvc := workerService.NewWorkerService(db, loc, workerRepo, departmentRepo, scheduleRepo, assignmentRepo)
	scheduleSvc := scheduleService.NewScheduleService(db, scheduleRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, loc, recordRepo, toleranceRuleRepo, workerRepo, scheduleRepo, holidayRepo)
	justificationSvc := justificationService.NewJustificationService(db, loc, justificationRepo, reasonRuleRepo, recordRepo, toleranceRuleRepo, workerRepo, scheduleRepo)
	holidaySvc := holidayService.NewHolidayService(loc, holidayRepo)
	reportSvc := reportService.NewReportService(loc, workerRepo, recordRepo, holidayRepo)

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewWorkerHandler(workerSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewJustificationHandler(justificationSvc),
		appHTTP.NewHolidayHandler(holidaySvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
