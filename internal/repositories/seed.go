package repositories

import (
	"context"

	"bizdel/internal/models"
)

// DefaultSchemes is the seeded incentive-program catalog.
func DefaultSchemes() []*models.Scheme {
	return []*models.Scheme{
		{
			SchemeName:  "MSME Credit Guarantee Scheme",
			SchemeType:  "financial",
			Description: "Collateral-free loans up to ₹2 crores for manufacturing units",
			EligibilityCriteria: models.JSONB{
				"businessType": []string{"manufacturing", "service"},
				"maxTurnover":  "20000000",
			},
			FundingRange:    "₹10 lakhs - ₹2 crores",
			ApplicationURL:  "https://www.cgtmse.in/",
			IsActive:        true,
			GovernmentLevel: models.GovernmentLevelCentral,
		},
		{
			SchemeName:  "Delhi Startup Policy",
			SchemeType:  "startup",
			Description: "Seed funding, incubation support, and tax benefits for startups",
			EligibilityCriteria: models.JSONB{
				"businessAge":  "< 5 years",
				"businessType": []string{"it", "service"},
			},
			FundingRange:    "Up to ₹20 lakhs",
			ApplicationURL:  "https://dipp.gov.in/",
			IsActive:        true,
			GovernmentLevel: models.GovernmentLevelState,
		},
		{
			SchemeName:  "Delhi Industrial Policy 2020",
			SchemeType:  "industrial",
			Description: "Land subsidies, power incentives, and R&D support",
			EligibilityCriteria: models.JSONB{
				"businessType": []string{"manufacturing"},
				"location":     "Delhi",
			},
			FundingRange:    "₹1 crore - ₹10 crores",
			ApplicationURL:  "https://delhi.gov.in/",
			IsActive:        true,
			GovernmentLevel: models.GovernmentLevelState,
		},
		{
			SchemeName:  "PM Employment Generation Programme",
			SchemeType:  "employment",
			Description: "Financial assistance to generate employment opportunities",
			EligibilityCriteria: models.JSONB{
				"businessType": []string{"manufacturing", "service", "retail"},
			},
			FundingRange:    "₹10 lakhs - ₹25 lakhs",
			ApplicationURL:  "https://www.kviconline.gov.in/",
			IsActive:        true,
			GovernmentLevel: models.GovernmentLevelCentral,
		},
		{
			SchemeName:  "Export Promotion Scheme",
			SchemeType:  "export",
			Description: "Financial assistance for market development and export infrastructure",
			EligibilityCriteria: models.JSONB{
				"hasExports": true,
			},
			FundingRange:    "₹5 lakhs - ₹50 lakhs",
			ApplicationURL:  "https://dgft.gov.in/",
			IsActive:        true,
			GovernmentLevel: models.GovernmentLevelCentral,
		},
	}
}

// SeedSchemes loads the default catalog into an empty scheme table. A
// non-empty catalog is left alone.
func SeedSchemes(ctx context.Context, repo SchemeRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, scheme := range DefaultSchemes() {
		if err := repo.Create(ctx, scheme); err != nil {
			return err
		}
	}
	return nil
}
