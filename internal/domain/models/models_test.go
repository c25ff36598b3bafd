package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `"2024-11-27T08:15:00Z"`, time.Date(2024, 11, 27, 8, 15, 0, 0, time.UTC), false},
		{"fractional with offset", `"2024-11-27T08:15:00.123456+00:00"`, time.Date(2024, 11, 27, 8, 15, 0, 123456000, time.UTC), false},
		{"no zone", `"2024-11-27T08:15:00"`, time.Date(2024, 11, 27, 8, 15, 0, 0, time.UTC), false},
		{"space separator", `"2024-11-27 08:15:00"`, time.Date(2024, 11, 27, 8, 15, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `12345`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := ts.UnmarshalJSON([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !ts.Equal(tt.want) {
				t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.input, ts.Time, tt.want)
			}
		})
	}
}

func TestAssistanceRequest_Decode(t *testing.T) {
	raw := `{
		"id": "req-1",
		"full_name": "Nimal Perera",
		"mobile_number": "0771234567",
		"mobile_number_2": "",
		"address": "12 River Rd",
		"latitude": 6.9,
		"longitude": 79.8,
		"num_men": 2,
		"num_women": 1,
		"num_children": 3,
		"urgency": "high",
		"status": "pending",
		"assistance_types": ["Food", "Water"],
		"additional_notes": "Roof damaged",
		"image_urls": [],
		"created_at": "2024-11-27T08:15:00Z",
		"updated_at": "2024-11-27T08:15:00Z",
		"establishment_type": "House",
		"resolved_by_user_id": null,
		"resolved_by_name": null,
		"resolved_at": null
	}`

	var r AssistanceRequest
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.People() != 6 {
		t.Errorf("People() = %d, want 6", r.People())
	}
	if got := r.PeopleSummary(); got != "2/1/3" {
		t.Errorf("PeopleSummary() = %q, want %q", got, "2/1/3")
	}
	if !r.ResolvedAt.IsZero() {
		t.Errorf("ResolvedAt = %v, want zero", r.ResolvedAt)
	}
	if r.DistanceKm != nil {
		t.Errorf("DistanceKm = %v, want nil", *r.DistanceKm)
	}
}

func TestContribution_SubTypes(t *testing.T) {
	c := Contribution{
		ContributionTypes: []string{ContributionServices},
		GoodsTypes:        []string{"Food"},
		ServicesTypes:     []string{"Transportation"},
	}

	if got := c.SubTypes(ContributionGoods); got != nil {
		t.Errorf("SubTypes(Goods) = %v, want nil when Goods is not offered", got)
	}
	if got := c.SubTypes(ContributionServices); len(got) != 1 || got[0] != "Transportation" {
		t.Errorf("SubTypes(Services) = %v, want [Transportation]", got)
	}
	if got := c.SubTypes("Bogus"); got != nil {
		t.Errorf("SubTypes(Bogus) = %v, want nil", got)
	}
}

func TestValidators(t *testing.T) {
	if !ValidUrgency(UrgencyCritical) || ValidUrgency("urgent") {
		t.Error("ValidUrgency mismatch")
	}
	if !ValidRequestStatus(RequestStatusInProgress) || ValidRequestStatus(ContributionStatusAvailable) {
		t.Error("ValidRequestStatus mismatch")
	}
	if !ValidContributionStatus(ContributionStatusDelivered) || ValidContributionStatus(RequestStatusPending) {
		t.Error("ValidContributionStatus mismatch")
	}
	if !ValidAssistanceType(AssistanceEvacuation) || ValidAssistanceType("food") {
		t.Error("ValidAssistanceType should be case-sensitive")
	}
	if !ValidContributionType(ContributionLabor) || ValidContributionType("Money") {
		t.Error("ValidContributionType mismatch")
	}
}
