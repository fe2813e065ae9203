package datasource

import (
	"time"

	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

func intp(n int) *int { return &n }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// samplePackages is what an empty mock store starts with.
func samplePackages() []domain.TravelPackage {
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	return []domain.TravelPackage{
		{
			ID:                 "1",
			Title:              "Bali Beach Escape",
			Destination:        "Bali",
			Description:        "Seven days of beaches, rice terraces and temple visits with daily breakfast.",
			Price:              decimal.RequireFromString("1299"),
			OriginalPrice:      decp("1599"),
			ImageURL:           "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-03-10", "2025-04-14", "2025-05-12"},
			DurationDays:       intp(7),
			StarRating:         4.8,
			TransportType:      domain.TransportFlight,
			AccommodationLevel: domain.AccommodationLuxury,
			MaxTravelers:       intp(12),
			Includes:           []string{"Flights", "Hotel", "Breakfast", "Airport transfer"},
			ProviderID:         "1",
			ProviderName:       "Island Hoppers",
			IsActive:           true,
			Country:            "Indonesia",
			Continent:          "Asia",
			CreatedDate:        created,
		},
		{
			ID:                 "2",
			Title:              "Paris City Break",
			Destination:        "Paris",
			Description:        "Four nights in central Paris with a Seine cruise and museum passes.",
			Price:              decimal.RequireFromString("899"),
			ImageURL:           "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-02-20", "2025-03-18"},
			DurationDays:       intp(5),
			StarRating:         4.6,
			TransportType:      domain.TransportTrain,
			AccommodationLevel: domain.AccommodationStandard,
			MaxTravelers:       intp(8),
			Includes:           []string{"Rail tickets", "Hotel", "Museum pass"},
			ProviderID:         "2",
			ProviderName:       "EuroRail Tours",
			IsActive:           true,
			Country:            "France",
			Continent:          "Europe",
			CreatedDate:        created.AddDate(0, 0, 1),
		},
		{
			ID:                 "3",
			Title:              "Swiss Alps Adventure",
			Destination:        "Interlaken",
			Description:        "Hiking, paragliding and scenic rail routes through the Bernese Oberland.",
			Price:              decimal.RequireFromString("2150"),
			OriginalPrice:      decp("2400"),
			ImageURL:           "https://images.unsplash.com/photo-1530122037265-a5f1f91d3b99?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-06-02", "2025-07-07", "2025-08-04"},
			DurationDays:       intp(8),
			StarRating:         4.9,
			TransportType:      domain.TransportTrain,
			AccommodationLevel: domain.AccommodationPremium,
			MaxTravelers:       intp(10),
			Includes:           []string{"Swiss Travel Pass", "Chalet", "Guided hikes"},
			ProviderID:         "2",
			ProviderName:       "EuroRail Tours",
			IsActive:           true,
			Country:            "Switzerland",
			Continent:          "Europe",
			CreatedDate:        created.AddDate(0, 0, 2),
		},
		{
			ID:                 "4",
			Title:              "Marrakech Desert Trip",
			Destination:        "Marrakech",
			Description:        "Souks, riads and a night under the stars in the Sahara.",
			Price:              decimal.RequireFromString("649"),
			ImageURL:           "https://images.unsplash.com/photo-1597212618440-806262de4f6b?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-04-01", "2025-10-06"},
			DurationDays:       intp(6),
			StarRating:         4.4,
			TransportType:      domain.TransportCar,
			AccommodationLevel: domain.AccommodationBudget,
			MaxTravelers:       intp(6),
			Includes:           []string{"4x4 transfer", "Riad", "Desert camp"},
			ProviderID:         "3",
			ProviderName:       "Atlas Journeys",
			IsActive:           true,
			Country:            "Morocco",
			Continent:          "Africa",
			CreatedDate:        created.AddDate(0, 0, 3),
		},
		{
			ID:                 "5",
			Title:              "Kyoto Cultural Tour",
			Destination:        "Kyoto",
			Description:        "Temples, tea ceremonies and a day trip to Nara.",
			Price:              decimal.RequireFromString("1850"),
			ImageURL:           "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-03-28", "2025-11-10"},
			DurationDays:       intp(9),
			StarRating:         4.7,
			TransportType:      domain.TransportFlight,
			AccommodationLevel: domain.AccommodationStandard,
			MaxTravelers:       intp(14),
			Includes:           []string{"Flights", "Ryokan", "JR Pass"},
			ProviderID:         "1",
			ProviderName:       "Island Hoppers",
			IsActive:           true,
			Country:            "Japan",
			Continent:          "Asia",
			CreatedDate:        created.AddDate(0, 0, 4),
		},
		{
			ID:                 "6",
			Title:              "Andalusia Road Trip",
			Destination:        "Seville",
			Description:        "Seville, Córdoba and Granada by car at your own pace.",
			Price:              decimal.RequireFromString("540"),
			ImageURL:           "https://images.unsplash.com/photo-1559636425-7d2d6ac12d1b?w=1200&h=800&fit=crop",
			AvailableDates:     []string{"2025-05-05"},
			DurationDays:       intp(6),
			StarRating:         4.3,
			TransportType:      domain.TransportCar,
			AccommodationLevel: domain.AccommodationStandard,
			MaxTravelers:       intp(4),
			Includes:           []string{"Car rental", "Hotels"},
			ProviderID:         "3",
			ProviderName:       "Atlas Journeys",
			IsActive:           true,
			Country:            "Spain",
			Continent:          "Europe",
			CreatedDate:        created.AddDate(0, 0, 5),
		},
	}
}
