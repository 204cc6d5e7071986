package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/careroute/backend/internal/infrastructure/clients/postgres"
	"github.com/careroute/backend/pkg/config"
	"github.com/google/uuid"
)

// Seeds a local database with a small Riyadh/Jeddah facility set for
// manual testing: run with RESET_DB=true to start from empty tables.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := pgClient.DB()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := db.ExecContext(ctx, `
			TRUNCATE TABLE
				routing_decisions,
				schedule_overrides,
				service_schedules,
				facility_services,
				facilities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	type facility struct {
		id, name, street, city string
		lat, lon               float64
		facilityType           string
		isEmergency            bool
	}

	facilities := []facility{
		{uuid.New().String(), "King Fahad Medical City", "Makkah Al Mukarramah Rd", "Riyadh", 24.6905, 46.7039, "central", true},
		{uuid.New().String(), "Prince Sultan Cardiac Center", "As Sulimaniyah", "Riyadh", 24.7104, 46.6742, "specialized", true},
		{uuid.New().String(), "Al Olaya General Hospital", "Olaya St", "Riyadh", 24.6947, 46.6853, "general", true},
		{uuid.New().String(), "Al Malaz District Hospital", "Salahuddin Rd", "Riyadh", 24.6668, 46.7359, "district", false},
		{uuid.New().String(), "Al Nakheel Urgent Care", "King Abdullah Rd", "Riyadh", 24.7570, 46.6520, "urgent_care_center", false},
		{uuid.New().String(), "Al Hamra Clinic", "An Nuzhah", "Riyadh", 24.7761, 46.7106, "clinic", false},
		{uuid.New().String(), "King Abdulaziz Hospital Jeddah", "Al Balad", "Jeddah", 21.4858, 39.1925, "general", true},
	}

	for _, f := range facilities {
		_, err := db.ExecContext(ctx, `
			INSERT INTO facilities (
				id, name, street, city, state, zip_code, country,
				latitude, longitude, phone_number, facility_type,
				is_emergency, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true, now(), now())
		`, f.id, f.name, f.street, f.city, "Riyadh Province", "11564", "Saudi Arabia",
			f.lat, f.lon, "+966112881111", f.facilityType, f.isEmergency)
		if err != nil {
			log.Printf("Failed to create facility %s: %v", f.name, err)
		}
	}

	type service struct {
		id, facilityID, serviceType, name string
		hasOnCall                         bool
		capacity, avgWait                 int
	}

	services := []service{}
	for i, f := range facilities {
		services = append(services, service{uuid.New().String(), f.id, "emergency", f.name + " Emergency", f.isEmergency, 20 + i*5, 10 + i*5})
		if f.facilityType == "specialized" {
			services = append(services, service{uuid.New().String(), f.id, "cardiology", f.name + " Cardiology", true, 12, 25})
		}
		if f.facilityType == "central" || f.facilityType == "general" {
			services = append(services, service{uuid.New().String(), f.id, "pediatrics", f.name + " Pediatrics", false, 15, 30})
		}
	}

	for _, s := range services {
		_, err := db.ExecContext(ctx, `
			INSERT INTO facility_services (
				id, facility_id, service_type, name, requires_appointment,
				has_on_call_coverage, capacity, average_wait_minutes,
				phone, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, false, $5, $6, $7, $8, true, now(), now())
		`, s.id, s.facilityID, s.serviceType, s.name, s.hasOnCall, s.capacity, s.avgWait, "+966112881111")
		if err != nil {
			log.Printf("Failed to create service %s: %v", s.name, err)
		}
	}

	// Emergency services run around the clock; everything else gets a
	// weekday daytime window plus weekend on-call coverage.
	for _, s := range services {
		if s.serviceType == "emergency" {
			_, err := db.ExecContext(ctx, `
				INSERT INTO service_schedules (
					id, service_id, kind, status, priority, is_active, created_at
				) VALUES ($1, $2, 'regular', 'available', 1, true, now())
			`, uuid.New().String(), s.id)
			if err != nil {
				log.Printf("Failed to create schedule for %s: %v", s.name, err)
			}
			continue
		}

		for day := 0; day <= 4; day++ {
			_, err := db.ExecContext(ctx, `
				INSERT INTO service_schedules (
					id, service_id, kind, day_of_week, start_time, end_time,
					status, priority, is_active, created_at
				) VALUES ($1, $2, 'regular', $3, '08:00:00', '20:00:00', 'available', 5, true, now())
			`, uuid.New().String(), s.id, day)
			if err != nil {
				log.Printf("Failed to create schedule for %s: %v", s.name, err)
			}
		}
		for day := 5; day <= 6; day++ {
			_, err := db.ExecContext(ctx, `
				INSERT INTO service_schedules (
					id, service_id, kind, day_of_week, status, capacity_override,
					on_call_doctor, on_call_phone, response_time_minutes,
					priority, is_active, created_at
				) VALUES ($1, $2, 'on_call', $3, 'on_call_only', 5, 'Dr. Al Rashid', '+966500000000', 30, 5, true, now())
			`, uuid.New().String(), s.id, day)
			if err != nil {
				log.Printf("Failed to create schedule for %s: %v", s.name, err)
			}
		}
	}

	// One maintenance closure next week on the district hospital's
	// emergency service, pointing at the central hospital.
	var districtEmergency, centralEmergency, centralFacility string
	for _, s := range services {
		if s.serviceType != "emergency" {
			continue
		}
		for _, f := range facilities {
			if f.id != s.facilityID {
				continue
			}
			if f.facilityType == "district" {
				districtEmergency = s.id
			}
			if f.facilityType == "central" {
				centralEmergency = s.id
				centralFacility = f.id
			}
		}
	}

	closureStart := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	_, err = db.ExecContext(ctx, `
		INSERT INTO schedule_overrides (
			id, service_id, start_at, end_at, status, reason,
			alternative_service_id, alternative_facility_id,
			is_active, created_at, created_by
		) VALUES ($1, $2, $3, $4, 'unavailable', 'planned maintenance', $5, $6, true, now(), 'seed')
	`, uuid.New().String(), districtEmergency, closureStart, closureStart.Add(48*time.Hour),
		centralEmergency, centralFacility)
	if err != nil {
		log.Printf("Failed to create override: %v", err)
	}

	log.Printf("Seeded %d facilities and %d services", len(facilities), len(services))
}
