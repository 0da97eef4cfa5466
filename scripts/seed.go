package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/adapters/database"
	"github.com/campventure/backend/internal/adapters/search"
	"github.com/campventure/backend/internal/application/services"
	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/repositories"
	"github.com/campventure/backend/internal/infrastructure/clients/postgres"
	"github.com/campventure/backend/internal/infrastructure/clients/typesense"
	"github.com/campventure/backend/internal/infrastructure/observability"
	"github.com/campventure/backend/pkg/config"
)

const campsSchema = `
CREATE TABLE IF NOT EXISTS camps (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	short_description TEXT,
	location_name TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	organizer_id TEXT NOT NULL DEFAULT '',
	images JSONB NOT NULL DEFAULT '[]',
	activities JSONB NOT NULL DEFAULT '[]',
	amenities TEXT[] NOT NULL DEFAULT '{}',
	pricing JSONB NOT NULL DEFAULT '{}',
	availability JSONB NOT NULL DEFAULT '[]',
	difficulty TEXT NOT NULL DEFAULT 'easy',
	group_min INT NOT NULL DEFAULT 1,
	group_max INT NOT NULL DEFAULT 10,
	duration_days INT NOT NULL DEFAULT 1,
	duration_nights INT NOT NULL DEFAULT 0,
	best_time_to_visit TEXT[] NOT NULL DEFAULT '{}',
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INT NOT NULL DEFAULT 0,
	featured BOOLEAN NOT NULL DEFAULT FALSE,
	verified BOOLEAN NOT NULL DEFAULT FALSE,
	tags TEXT[] NOT NULL DEFAULT '{}',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_camps_state ON camps (state);
CREATE INDEX IF NOT EXISTS idx_camps_difficulty ON camps (difficulty);
CREATE INDEX IF NOT EXISTS idx_camps_created_at ON camps (created_at DESC);
`

func main() {
	observability.InitLogger("campventure-seed", os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, campsSchema); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure camps schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating camps before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE camps`); err != nil {
			log.Fatal().Err(err).Msg("failed to truncate camps")
		}
	}

	var searchRepo repositories.CampSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		} else {
			searchRepo = adapter
		}
	} else {
		log.Warn().Err(err).Msg("Typesense unavailable, seeding database only")
	}

	campRepo := database.NewCampAdapter(pgClient)
	campService := services.NewCampService(campRepo, searchRepo, nil)

	seeded := 0
	for _, camp := range sampleCamps() {
		if err := campService.Create(ctx, camp); err != nil {
			log.Error().Err(err).Str("title", camp.Title).Msg("failed to seed camp")
			continue
		}
		seeded++
	}

	log.Info().Int("count", seeded).Msg("seeding complete")
}

func sampleCamps() []*entities.Camp {
	organizer := uuid.NewString()
	now := time.Now()

	return []*entities.Camp{
		{
			Title:            "Triund Ridge Winter Trek Camp",
			Description:      "Snow trekking above McLeod Ganj with panoramic Dhauladhar views, bonfires, and guided night walks.",
			ShortDescription: "Snow trek and alpine camping near Dharamshala",
			Location: entities.Location{
				Name:      "Triund, Dharamshala",
				State:     "Himachal Pradesh",
				Latitude:  32.2712,
				Longitude: 76.3421,
			},
			OrganizerID: organizer,
			Images: []entities.Image{
				{URL: "https://images.campventure.in/triund-1.jpg", Alt: "Snow ridge above Triund", IsPrimary: true},
			},
			Activities: []entities.Activity{
				{Name: "Snow Trekking", Category: "adventure", Difficulty: entities.DifficultyModerate, Included: true},
				{Name: "Bonfire", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Stargazing", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Tents", "Sleeping Bags", "Meals", "First Aid"},
			Pricing: entities.Pricing{
				BasePrice: 3499,
				Currency:  "INR",
				GroupDiscounts: []entities.GroupDiscount{
					{MinPeople: 6, DiscountPercent: 10},
				},
				Includes: []string{"All meals", "Camping equipment", "Guide"},
				Excludes: []string{"Transport to base"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 14), EndDate: now.AddDate(0, 0, 16), Capacity: 20, Booked: 6, Price: 3499},
				{StartDate: now.AddDate(0, 1, 0), EndDate: now.AddDate(0, 1, 2), Capacity: 20, Booked: 2, Price: 3499},
			},
			Difficulty:      entities.DifficultyModerate,
			GroupSize:       entities.GroupSize{Min: 2, Max: 12},
			Duration:        entities.Duration{Days: 3, Nights: 2},
			BestTimeToVisit: []entities.Season{entities.SeasonWinter, entities.SeasonSpring},
			Rating:          entities.Rating{Average: 4.6, Count: 87},
			Featured:        true,
			Verified:        true,
			Tags:            []string{"himalayas", "snow", "trekking"},
		},
		{
			Title:            "Rishikesh Riverside Adventure Camp",
			Description:      "White water rafting on the Ganges, cliff jumping, and riverside camping with beach volleyball.",
			ShortDescription: "Rafting and riverside camping in Rishikesh",
			Location: entities.Location{
				Name:      "Shivpuri, Rishikesh",
				State:     "Uttarakhand",
				Latitude:  30.1463,
				Longitude: 78.3912,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "River Rafting", Category: "adventure", Difficulty: entities.DifficultyModerate, Included: true},
				{Name: "Cliff Jumping", Category: "adventure", Difficulty: entities.DifficultyChallenging, Included: false, ExtraCost: 500},
				{Name: "Beach Volleyball", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Swiss Tents", "Meals", "Changing Rooms", "Equipment"},
			Pricing: entities.Pricing{
				BasePrice: 2199,
				Currency:  "INR",
				Includes:  []string{"Meals", "Rafting equipment"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 7), EndDate: now.AddDate(0, 0, 8), Capacity: 40, Booked: 22, Price: 2199},
				{StartDate: now.AddDate(0, 0, 21), EndDate: now.AddDate(0, 0, 22), Capacity: 40, Booked: 10, Price: 2199},
				{StartDate: now.AddDate(0, 1, 7), EndDate: now.AddDate(0, 1, 8), Capacity: 40, Booked: 0, Price: 2399},
				{StartDate: now.AddDate(0, 2, 0), EndDate: now.AddDate(0, 2, 1), Capacity: 40, Booked: 0, Price: 2399},
			},
			Difficulty:      entities.DifficultyModerate,
			GroupSize:       entities.GroupSize{Min: 2, Max: 30},
			Duration:        entities.Duration{Days: 2, Nights: 1},
			BestTimeToVisit: []entities.Season{entities.SeasonSpring, entities.SeasonSummer, entities.SeasonAutumn},
			Rating:          entities.Rating{Average: 4.4, Count: 214},
			Featured:        true,
			Verified:        true,
			Tags:            []string{"rafting", "ganges", "weekend"},
		},
		{
			Title:            "Coorg Coffee Estate Family Camp",
			Description:      "Easy nature walks through coffee plantations, bird watching, and farm-to-table meals for families.",
			ShortDescription: "Family camping in Coorg plantations",
			Location: entities.Location{
				Name:      "Madikeri, Coorg",
				State:     "Karnataka",
				Latitude:  12.4244,
				Longitude: 75.7382,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "Nature Walk", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Bird Watching", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Photography", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Cottage Tents", "Meals", "Hot Water", "Parking"},
			Pricing: entities.Pricing{
				BasePrice: 1799,
				Currency:  "INR",
				GroupDiscounts: []entities.GroupDiscount{
					{MinPeople: 4, DiscountPercent: 8},
				},
				Includes: []string{"Breakfast and dinner", "Plantation tour"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 10), EndDate: now.AddDate(0, 0, 11), Capacity: 16, Booked: 4, Price: 1799},
			},
			Difficulty:      entities.DifficultyEasy,
			GroupSize:       entities.GroupSize{Min: 2, Max: 8},
			Duration:        entities.Duration{Days: 2, Nights: 1},
			BestTimeToVisit: []entities.Season{entities.SeasonSummer, entities.SeasonAutumn},
			Rating:          entities.Rating{Average: 4.7, Count: 23},
			Verified:        true,
			Tags:            []string{"family", "coffee", "nature"},
		},
		{
			Title:            "Ladakh High Altitude Expedition Camp",
			Description:      "Extreme altitude expedition with private guides, gourmet camp kitchen, and optional helicopter transfers from Leh.",
			ShortDescription: "Luxury expedition camping in Ladakh",
			Location: entities.Location{
				Name:      "Tso Moriri, Changthang",
				State:     "Ladakh",
				Latitude:  32.9066,
				Longitude: 78.3253,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "High Altitude Trekking", Category: "adventure", Difficulty: entities.DifficultyExtreme, Included: true},
				{Name: "Private Guide", Category: "service", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Gourmet Dining", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Helicopter Transfer", Category: "service", Difficulty: entities.DifficultyEasy, Included: false, ExtraCost: 25000},
			},
			Amenities: []string{"Heated Tents", "Oxygen Support", "Satellite Phone", "Gourmet Meals"},
			Pricing: entities.Pricing{
				BasePrice: 24999,
				Currency:  "INR",
				Includes:  []string{"All meals", "Permits", "Medical support"},
				Excludes:  []string{"Flights to Leh"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 1, 0), EndDate: now.AddDate(0, 1, 6), Capacity: 8, Booked: 3, Price: 24999},
			},
			Difficulty:      entities.DifficultyExtreme,
			GroupSize:       entities.GroupSize{Min: 2, Max: 8},
			Duration:        entities.Duration{Days: 7, Nights: 6},
			BestTimeToVisit: []entities.Season{entities.SeasonSummer},
			Rating:          entities.Rating{Average: 4.9, Count: 41},
			Featured:        true,
			Verified:        true,
			Tags:            []string{"luxury", "expedition", "ladakh"},
		},
		{
			Title:            "Lonavala Lakeside Monsoon Camp",
			Description:      "Lakeside tents near Pawna with kayaking, cycling trails, and barbecue nights under the Sahyadri hills.",
			ShortDescription: "Lakeside camping at Pawna",
			Location: entities.Location{
				Name:      "Pawna Lake, Lonavala",
				State:     "Maharashtra",
				Latitude:  18.6643,
				Longitude: 73.4788,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "Kayaking", Category: "adventure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Cycling", Category: "adventure", Difficulty: entities.DifficultyEasy, Included: false, ExtraCost: 300},
				{Name: "Barbecue", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Dome Tents", "Barbecue", "Washrooms", "Parking"},
			Pricing: entities.Pricing{
				BasePrice: 1299,
				Currency:  "INR",
				GroupDiscounts: []entities.GroupDiscount{
					{MinPeople: 8, DiscountPercent: 12},
				},
				Includes: []string{"Dinner and breakfast", "Kayak session"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 5), EndDate: now.AddDate(0, 0, 6), Capacity: 60, Booked: 35, Price: 1299},
				{StartDate: now.AddDate(0, 0, 12), EndDate: now.AddDate(0, 0, 13), Capacity: 60, Booked: 18, Price: 1299},
			},
			Difficulty:      entities.DifficultyEasy,
			GroupSize:       entities.GroupSize{Min: 2, Max: 40},
			Duration:        entities.Duration{Days: 2, Nights: 1},
			BestTimeToVisit: []entities.Season{entities.SeasonAutumn, entities.SeasonWinter},
			Rating:          entities.Rating{Average: 4.2, Count: 312},
			Verified:        true,
			Tags:            []string{"lakeside", "weekend", "mumbai"},
		},
		{
			Title:            "Jaisalmer Desert Dune Camp",
			Description:      "Camel safaris across the Thar, folk music evenings, and rock climbing on nearby outcrops each spring.",
			ShortDescription: "Desert camping near Sam dunes",
			Location: entities.Location{
				Name:      "Sam Sand Dunes, Jaisalmer",
				State:     "Rajasthan",
				Latitude:  26.8244,
				Longitude: 70.5120,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "Camel Safari", Category: "adventure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Rock Climbing", Category: "adventure", Difficulty: entities.DifficultyChallenging, Included: false, ExtraCost: 800},
				{Name: "Folk Music Night", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Photography", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Royal Tents", "Meals", "Cultural Program"},
			Pricing: entities.Pricing{
				BasePrice: 5999,
				Currency:  "INR",
				Includes:  []string{"All meals", "Camel safari", "Cultural show"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 20), EndDate: now.AddDate(0, 0, 22), Capacity: 24, Booked: 9, Price: 5999},
			},
			Difficulty:      entities.DifficultyEasy,
			GroupSize:       entities.GroupSize{Min: 2, Max: 20},
			Duration:        entities.Duration{Days: 3, Nights: 2},
			BestTimeToVisit: []entities.Season{entities.SeasonSpring, entities.SeasonWinter},
			Rating:          entities.Rating{Average: 4.8, Count: 156},
			Featured:        true,
			Verified:        true,
			Tags:            []string{"desert", "culture", "rajasthan"},
		},
		{
			Title:            "Wayanad Rainforest Trekking Camp",
			Description:      "Challenging rainforest treks to Chembra peak with swimming holes, bird watching, and plantation visits.",
			ShortDescription: "Rainforest trekking in Wayanad",
			Location: entities.Location{
				Name:      "Chembra, Wayanad",
				State:     "Kerala",
				Latitude:  11.5370,
				Longitude: 76.0826,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "Trekking", Category: "adventure", Difficulty: entities.DifficultyChallenging, Included: true},
				{Name: "Swimming", Category: "adventure", Difficulty: entities.DifficultyModerate, Included: true},
				{Name: "Bird Watching", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Tents", "Meals", "Guide", "Leech Socks"},
			Pricing: entities.Pricing{
				BasePrice: 2799,
				Currency:  "INR",
				Includes:  []string{"Meals", "Forest permits", "Equipment"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 0, 9), EndDate: now.AddDate(0, 0, 10), Capacity: 15, Booked: 7, Price: 2799},
			},
			Difficulty:      entities.DifficultyChallenging,
			GroupSize:       entities.GroupSize{Min: 4, Max: 15},
			Duration:        entities.Duration{Days: 2, Nights: 1},
			BestTimeToVisit: []entities.Season{entities.SeasonSummer, entities.SeasonAutumn},
			Rating:          entities.Rating{Average: 4.5, Count: 68},
			Verified:        true,
			Tags:            []string{"rainforest", "trekking", "kerala"},
		},
		{
			Title:            "Andaman Island Luxury Beach Camp",
			Description:      "Private beach camping on Havelock with scuba diving, gourmet seafood, and private guide service.",
			ShortDescription: "Luxury beach camp on Havelock Island",
			Location: entities.Location{
				Name:      "Havelock Island",
				State:     "Andaman and Nicobar",
				Latitude:  12.0167,
				Longitude: 92.9833,
			},
			OrganizerID: organizer,
			Activities: []entities.Activity{
				{Name: "Scuba Diving", Category: "adventure", Difficulty: entities.DifficultyModerate, Included: true},
				{Name: "Gourmet Seafood Dinner", Category: "leisure", Difficulty: entities.DifficultyEasy, Included: true},
				{Name: "Private Guide", Category: "service", Difficulty: entities.DifficultyEasy, Included: true},
			},
			Amenities: []string{"Luxury Tents", "Private Beach", "Dive Equipment", "Chef"},
			Pricing: entities.Pricing{
				BasePrice: 18999,
				Currency:  "INR",
				Includes:  []string{"All meals", "Two dives", "Ferry transfers"},
			},
			Availability: []entities.AvailabilitySlot{
				{StartDate: now.AddDate(0, 1, 15), EndDate: now.AddDate(0, 1, 18), Capacity: 10, Booked: 4, Price: 18999},
			},
			Difficulty:      entities.DifficultyModerate,
			GroupSize:       entities.GroupSize{Min: 2, Max: 10},
			Duration:        entities.Duration{Days: 4, Nights: 3},
			BestTimeToVisit: []entities.Season{entities.SeasonWinter, entities.SeasonSpring},
			Rating:          entities.Rating{Average: 4.8, Count: 29},
			Featured:        true,
			Verified:        true,
			Tags:            []string{"beach", "luxury", "diving"},
		},
	}
}
