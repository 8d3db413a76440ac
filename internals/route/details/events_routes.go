package details

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zionhub_backend/internals/configs"
	checkinController "zionhub_backend/internals/features/events/checkin/controller"
	checkinRepo "zionhub_backend/internals/features/events/checkin/repository"
	checkinRoute "zionhub_backend/internals/features/events/checkin/route"
	checkinService "zionhub_backend/internals/features/events/checkin/service"
	"zionhub_backend/internals/helpers/dbtime"
	"zionhub_backend/internals/seeds"
)

// CheckinStore is what both check-in services need from the backend.
type CheckinStore interface {
	checkinService.AssignmentStore
	checkinService.AttendanceReader
}

// NewCheckinStore picks the attendance backend named by STORE_DRIVER. The
// in-memory store is filled from SEED_FILE.
func NewCheckinStore(db *gorm.DB, cfg *configs.Config) CheckinStore {
	if cfg.StoreDriver == configs.StoreDriverMemory || db == nil {
		log.Println("[WARN] check-in store: in-memory, data is lost on restart")
		mem := checkinRepo.NewMemoryStore()
		seeds.RunMemorySeeds(mem, cfg.SeedFile)
		return mem
	}
	return checkinRepo.NewGormStore(db)
}

// EventRoutes mounts the event check-in endpoints on an authenticated /api group.
func EventRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config) {
	store := NewCheckinStore(db, cfg)
	clock := dbtime.SystemClock{}

	ctl := checkinController.NewCheckinController(
		checkinService.NewCheckinService(store, checkinService.NewTokenCodec(clock), clock),
		checkinService.NewAttendanceQueryService(store, dbtime.LoadLocation(cfg.Timezone)),
		cfg.FrontendURL,
	)
	checkinRoute.CheckinRoutes(api, ctl)
}
