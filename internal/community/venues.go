package community

import (
	"context"

	"basari/internal/domain/accesscontrol"
	"basari/internal/domain/venues"
)

type VenueInput struct {
	Name        string   `validate:"required,max=200"`
	Address     string   `validate:"max=300"`
	City        string   `validate:"required,max=100"`
	Region      string   `validate:"required,oneof=north center south jerusalem shfela"`
	Lat         float64  `validate:"latitude"`
	Lng         float64  `validate:"longitude"`
	Kashrut     string   `validate:"required,oneof=none regular mehadrin badatz"`
	MeatTypes   []string `validate:"dive,required"`
	Styles      []string `validate:"dive,required"`
	PriceRange  int      `validate:"min=1,max=3"`
	HasDelivery bool
	HasSeating  bool
	Tags        []string
}

// ImportVenue inserts or updates the venue identified by slug. Featured and
// verified flags and the rating aggregate of an existing venue are kept.
func (s *Service) ImportVenue(ctx context.Context, caller *Caller, slug string, in VenueInput) (*venues.Venue, error) {
	if err := authorize(caller, accesscontrol.ActionImportVenue); err != nil {
		return nil, err
	}
	if err := s.validate.Var(slug, "required,max=120"); err != nil {
		return nil, invalid(err)
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	v := &venues.Venue{
		Slug:        slug,
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Region:      venues.Region(in.Region),
		Lat:         in.Lat,
		Lng:         in.Lng,
		Kashrut:     venues.Kashrut(in.Kashrut),
		MeatTypes:   in.MeatTypes,
		Styles:      in.Styles,
		PriceRange:  in.PriceRange,
		HasDelivery: in.HasDelivery,
		HasSeating:  in.HasSeating,
		Tags:        in.Tags,
	}
	if err := s.repos.Venues.Upsert(ctx, v); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return v, nil
}
