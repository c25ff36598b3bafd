package testutil

import (
	"fmt"
	"time"

	"github.com/dalemusser/floodrelief/internal/domain/models"
)

// FixtureTime is the created_at stamp used by generated fixtures.
var FixtureTime = time.Date(2024, 11, 27, 8, 15, 0, 0, time.UTC)

// NewRequestFixture returns a pending, high-urgency assistance request with
// predictable field values derived from n.
func NewRequestFixture(n int) models.AssistanceRequest {
	return models.AssistanceRequest{
		ID:                fmt.Sprintf("req-%03d", n),
		FullName:          fmt.Sprintf("Requester %d", n),
		MobileNumber:      fmt.Sprintf("07700%05d", n),
		Address:           fmt.Sprintf("%d River Rd", n),
		Latitude:          6.9,
		Longitude:         79.8,
		NumMen:            1,
		NumWomen:          2,
		NumChildren:       n % 4,
		Urgency:           models.UrgencyHigh,
		Status:            models.RequestStatusPending,
		AssistanceTypes:   []string{models.AssistanceFood, models.AssistanceWater},
		AdditionalNotes:   "",
		EstablishmentType: "House",
		CreatedAt:         models.Timestamp{Time: FixtureTime},
		UpdatedAt:         models.Timestamp{Time: FixtureTime},
	}
}

// NewContributionFixture returns an available, verified goods contribution
// derived from n.
func NewContributionFixture(n int) models.Contribution {
	return models.Contribution{
		ID:                fmt.Sprintf("con-%03d", n),
		FullName:          fmt.Sprintf("Donor %d", n),
		MobileNumber:      fmt.Sprintf("07800%05d", n),
		Email:             fmt.Sprintf("donor%d@example.org", n),
		Address:           fmt.Sprintf("%d Hill St", n),
		ContributionTypes: []string{models.ContributionGoods},
		GoodsTypes:        []string{"Food", "Clothing"},
		CoverageRadiusKm:  10,
		Status:            models.ContributionStatusAvailable,
		Verified:          true,
		CreatedAt:         models.Timestamp{Time: FixtureTime},
		UpdatedAt:         models.Timestamp{Time: FixtureTime},
	}
}

// Requests returns n request fixtures numbered from first.
func Requests(first, n int) []models.AssistanceRequest {
	out := make([]models.AssistanceRequest, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewRequestFixture(first+i))
	}
	return out
}

// Contributions returns n contribution fixtures numbered from first.
func Contributions(first, n int) []models.Contribution {
	out := make([]models.Contribution, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewContributionFixture(first+i))
	}
	return out
}

// Envelope assembles a response envelope with consistent pagination meta.
func Envelope(reqs []models.AssistanceRequest, contribs []models.Contribution, totalRequests, totalContributions, limit, offset int) models.Envelope {
	if reqs == nil {
		reqs = []models.AssistanceRequest{}
	}
	if contribs == nil {
		contribs = []models.Contribution{}
	}
	return models.Envelope{
		Requests:      reqs,
		Contributions: contribs,
		Meta: models.Meta{
			TotalRequests:      totalRequests,
			TotalContributions: totalContributions,
			Pagination: models.PaginationMeta{
				Limit:                 limit,
				Offset:                offset,
				ReturnedRequests:      len(reqs),
				ReturnedContributions: len(contribs),
			},
		},
	}
}
