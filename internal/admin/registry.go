package admin

import (
	"time"

	"gorm.io/gorm"

	"github.com/adityawr/fitstudio/internal/models"
)

// Resource describes how the back-office exposes one entity: which columns
// are searchable and filterable, which timestamp drives date drill-down,
// which child records appear inline on the detail view, and any hooks that
// run around writes. The generic handlers interpret these descriptors; no
// per-entity screens exist.
type Resource struct {
	Name           string
	NewModel       func() interface{}
	NewList        func() interface{}
	SearchFields   []string
	FilterFields   []string
	DateField      string
	DefaultOrder   string
	ListPreloads   []string
	DetailPreloads []string

	// Decorate fills display-only fields after a load. It receives either a
	// single record or a list pointer.
	Decorate func(v interface{})

	AfterCreate func(tx *gorm.DB, record interface{}) error
	AfterDelete func(tx *gorm.DB, record interface{}) error
}

var registry = map[string]Resource{
	"accounts": {
		Name:           "accounts",
		NewModel:       func() interface{} { return &models.Account{} },
		NewList:        func() interface{} { return &[]models.Account{} },
		SearchFields:   []string{"username", "email"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"Role"},
		DetailPreloads: []string{"Role"},
	},
	"users": {
		Name:           "users",
		NewModel:       func() interface{} { return &models.User{} },
		NewList:        func() interface{} { return &[]models.User{} },
		SearchFields:   []string{"first_name", "last_name", "phone"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"Account"},
		DetailPreloads: []string{"Account", "Memberships", "Payments", "Bookings"},
	},
	"tariffs": {
		Name:         "tariffs",
		NewModel:     func() interface{} { return &models.Tariff{} },
		NewList:      func() interface{} { return &[]models.Tariff{} },
		SearchFields: []string{"name"},
		FilterFields: []string{"is_active"},
		DefaultOrder: "name",
	},
	"clubs": {
		Name:           "clubs",
		NewModel:       func() interface{} { return &models.Club{} },
		NewList:        func() interface{} { return &[]models.Club{} },
		SearchFields:   []string{"name", "address", "phone"},
		DefaultOrder:   "name",
		ListPreloads:   []string{"TrainerClubs", "Events"},
		DetailPreloads: []string{"TrainerClubs", "TrainerClubs.Trainer", "Events"},
		Decorate:       decorateClubs,
	},
	"trainers": {
		Name:           "trainers",
		NewModel:       func() interface{} { return &models.Trainer{} },
		NewList:        func() interface{} { return &[]models.Trainer{} },
		SearchFields:   []string{"full_name", "speciality", "experience"},
		FilterFields:   []string{"speciality"},
		DefaultOrder:   "full_name",
		ListPreloads:   []string{"TrainerClubs", "Events"},
		DetailPreloads: []string{"TrainerClubs", "TrainerClubs.Club", "Events"},
		Decorate:       decorateTrainers,
	},
	"classes": {
		Name:           "classes",
		NewModel:       func() interface{} { return &models.Class{} },
		NewList:        func() interface{} { return &[]models.Class{} },
		SearchFields:   []string{"title", "category"},
		FilterFields:   []string{"category", "level"},
		DefaultOrder:   "title",
		ListPreloads:   []string{"Events"},
		DetailPreloads: []string{"Events"},
		Decorate:       decorateClasses,
	},
	"events": {
		Name:           "events",
		NewModel:       func() interface{} { return &models.Event{} },
		NewList:        func() interface{} { return &[]models.Event{} },
		SearchFields:   []string{"description"},
		FilterFields:   []string{"status", "club_id", "class_id"},
		DateField:      "start_at",
		DefaultOrder:   "start_at DESC",
		ListPreloads:   []string{"Class", "Trainer", "Club"},
		DetailPreloads: []string{"Class", "Trainer", "Club", "Bookings"},
	},
	"memberships": {
		Name:           "memberships",
		NewModel:       func() interface{} { return &models.UserMembership{} },
		NewList:        func() interface{} { return &[]models.UserMembership{} },
		FilterFields:   []string{"status", "tariff_id", "club_id"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"User", "Tariff", "Club"},
		DetailPreloads: []string{"User", "Tariff", "Club", "Payments"},
	},
	"payments": {
		Name:           "payments",
		NewModel:       func() interface{} { return &models.Payment{} },
		NewList:        func() interface{} { return &[]models.Payment{} },
		FilterFields:   []string{"status"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"User", "Membership"},
		DetailPreloads: []string{"User", "Membership"},
	},
	"bookings": {
		Name:           "bookings",
		NewModel:       func() interface{} { return &models.Booking{} },
		NewList:        func() interface{} { return &[]models.Booking{} },
		FilterFields:   []string{"status", "event_id"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"Event", "User"},
		DetailPreloads: []string{"Event", "Event.Class", "User"},
		AfterCreate:    incrementBookedCount,
		AfterDelete:    decrementBookedCount,
	},
	"trainer-clubs": {
		Name:           "trainer-clubs",
		NewModel:       func() interface{} { return &models.TrainerClub{} },
		NewList:        func() interface{} { return &[]models.TrainerClub{} },
		FilterFields:   []string{"is_active", "club_id"},
		DateField:      "created_at",
		DefaultOrder:   "created_at DESC",
		ListPreloads:   []string{"Trainer", "Club"},
		DetailPreloads: []string{"Trainer", "Club"},
	},
}

func Lookup(name string) (Resource, bool) {
	res, ok := registry[name]
	return res, ok
}

func ResourceNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func decorateTrainers(v interface{}) {
	now := time.Now()
	switch t := v.(type) {
	case *models.Trainer:
		t.Decorate(now)
	case *[]models.Trainer:
		for i := range *t {
			(*t)[i].Decorate(now)
		}
	}
}

func decorateClubs(v interface{}) {
	switch t := v.(type) {
	case *models.Club:
		t.Decorate()
	case *[]models.Club:
		for i := range *t {
			(*t)[i].Decorate()
		}
	}
}

func decorateClasses(v interface{}) {
	switch t := v.(type) {
	case *models.Class:
		t.Decorate()
	case *[]models.Class:
		for i := range *t {
			(*t)[i].Decorate()
		}
	}
}

// Booking writes keep the event's denormalized counter in step using SQL
// expressions, never a read-modify-write.
func incrementBookedCount(tx *gorm.DB, record interface{}) error {
	booking, ok := record.(*models.Booking)
	if !ok {
		return nil
	}
	return tx.Model(&models.Event{}).
		Where("id = ?", booking.EventID).
		UpdateColumn("booked_count", gorm.Expr("booked_count + 1")).Error
}

func decrementBookedCount(tx *gorm.DB, record interface{}) error {
	booking, ok := record.(*models.Booking)
	if !ok {
		return nil
	}
	return tx.Model(&models.Event{}).
		Where("id = ?", booking.EventID).
		UpdateColumn("booked_count", gorm.Expr("GREATEST(booked_count - 1, 0)")).Error
}
