package main

import (
	"context"
	"time"

	"casa360/internal/config"
	"casa360/internal/database"
	"casa360/internal/features/calendar"
	"casa360/internal/features/document"
	"casa360/internal/features/family"
	"casa360/internal/features/pet"
	"casa360/internal/features/shopping"
	"casa360/internal/features/vehicle"
	"casa360/internal/features/work"
	"casa360/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed fills an empty database with a demo family so the frontend has
// something to show on first run. Re-running is a no-op when the demo
// invite code already exists.
func Seed(
	lc fx.Lifecycle,
	groupRepo family.GroupRepository,
	memberRepo family.MemberRepository,
	eventRepo calendar.EventRepository,
	vehicleRepo vehicle.VehicleRepository,
	petRepo pet.PetRepository,
	reminderRepo pet.ReminderRepository,
	shiftRepo work.ShiftRepository,
	documentRepo document.DocumentRepository,
	itemRepo shopping.ItemRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo family...")

				const inviteCode = "DEMO-CASA"
				if _, err := groupRepo.FindByInviteCode(ctx, inviteCode); err == nil {
					logger.Info("Demo family exists, skipping")
					return
				}

				hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
				if err != nil {
					logger.Fatal("Failed to hash demo password", zap.Error(err))
				}

				group := &family.Group{Name: "Famiglia Demo", InviteCode: inviteCode}
				if err := groupRepo.Create(ctx, group); err != nil {
					logger.Fatal("Failed to create family group", zap.Error(err))
				}

				admin := &family.Member{
					FamilyID:     group.ID,
					Name:         "Anna",
					Email:        "anna@example.com",
					PasswordHash: string(hash),
					Role:         family.RoleAdmin,
					AvatarColor:  "#e57373",
				}
				member := &family.Member{
					FamilyID:     group.ID,
					Name:         "Marco",
					Email:        "marco@example.com",
					PasswordHash: string(hash),
					Role:         family.RoleMember,
					AvatarColor:  "#64b5f6",
				}
				for _, m := range []*family.Member{admin, member} {
					if err := memberRepo.Create(ctx, m); err != nil {
						logger.Fatal("Failed to create member", zap.Error(err))
					}
				}

				now := time.Now()
				day := func(offset int) string {
					return now.AddDate(0, 0, offset).Format("2006-01-02")
				}

				at := func(offset int, hour, min int) time.Time {
					d := now.AddDate(0, 0, offset)
					return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
				}
				events := []*calendar.Row{
					{FamilyID: group.ID, Title: "Cena con i nonni", EventType: "Famiglia", StartTime: at(2, 20, 0), EndTime: at(2, 21, 0), AssignedTo: &admin.ID, CreatedBy: admin.ID},
					{FamilyID: group.ID, Title: "Calcetto", EventType: "Sport", StartTime: at(4, 18, 30), EndTime: at(4, 19, 30), AssignedTo: &member.ID, CreatedBy: member.ID},
				}
				for _, e := range events {
					if err := eventRepo.Create(ctx, e); err != nil {
						logger.Fatal("Failed to create event", zap.Error(err))
					}
				}

				car := &vehicle.Vehicle{
					FamilyID:       group.ID,
					Name:           "Panda",
					Plate:          "AB123CD",
					InsuranceDate:  day(20),
					TaxDate:        day(45),
					InspectionDate: day(120),
				}
				if err := vehicleRepo.Create(ctx, car); err != nil {
					logger.Fatal("Failed to create vehicle", zap.Error(err))
				}

				dog := &pet.Pet{FamilyID: group.ID, Name: "Fido", Species: "Cane"}
				if err := petRepo.Create(ctx, dog); err != nil {
					logger.Fatal("Failed to create pet", zap.Error(err))
				}
				reminder := &pet.Reminder{
					FamilyID:     group.ID,
					PetID:        dog.ID,
					ReminderType: "Vaccino",
					DueDate:      day(10),
					DueTime:      "16:30",
				}
				if err := reminderRepo.Create(ctx, reminder); err != nil {
					logger.Fatal("Failed to create pet reminder", zap.Error(err))
				}

				shifts := []*work.Shift{
					{FamilyID: group.ID, MemberID: admin.ID, Date: day(1), ShiftType: work.ShiftMorning, StartTime: "06:00", EndTime: "14:00"},
					{FamilyID: group.ID, MemberID: admin.ID, Date: day(3), ShiftType: work.ShiftLeave},
				}
				for _, s := range shifts {
					if err := shiftRepo.Create(ctx, s); err != nil {
						logger.Fatal("Failed to create shift", zap.Error(err))
					}
				}

				doc := &document.Document{
					FamilyID:   group.ID,
					Title:      "Carta d'identità",
					Category:   "Identità",
					Owner:      "Anna",
					ExpiryDate: day(60),
					CreatedBy:  admin.ID,
				}
				if err := documentRepo.Create(ctx, doc); err != nil {
					logger.Fatal("Failed to create document", zap.Error(err))
				}

				items := []*shopping.Item{
					{FamilyID: group.ID, Name: "Latte", IsUrgent: true, AddedBy: admin.ID},
					{FamilyID: group.ID, Name: "Pane", AddedBy: member.ID},
					{FamilyID: group.ID, Name: "Crocchette", AddedBy: admin.ID},
				}
				for _, it := range items {
					if err := itemRepo.Create(ctx, it); err != nil {
						logger.Fatal("Failed to create shopping item", zap.Error(err))
					}
				}

				logger.Info("Demo family seeded",
					zap.String("inviteCode", inviteCode),
					zap.String("login", "anna@example.com / demo1234"))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,

			family.NewGroupRepository,
			family.NewMemberRepository,
			calendar.NewEventRepository,
			vehicle.NewVehicleRepository,
			pet.NewPetRepository,
			pet.NewReminderRepository,
			work.NewShiftRepository,
			document.NewDocumentRepository,
			shopping.NewItemRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
