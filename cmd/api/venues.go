package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"basari/internal/cache"
	"basari/internal/domain/venues"
	"basari/internal/geo"
	"basari/internal/params"
)

const maxNearbyLimit = 100

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}

// parseNearbyQuery reads lat, lng, radius (km) and limit. A missing radius
// falls back to the default search radius.
func parseNearbyQuery(q url.Values) (venues.NearbyQuery, error) {
	lat, err := params.RequiredFloat(q, "lat")
	if err != nil {
		return venues.NearbyQuery{}, err
	}
	lng, err := params.RequiredFloat(q, "lng")
	if err != nil {
		return venues.NearbyQuery{}, err
	}
	radius, err := params.Float(q, "radius")
	if err != nil {
		return venues.NearbyQuery{}, err
	}

	nq := venues.NearbyQuery{
		Center:   geo.Point{Lat: lat, Lng: lng},
		RadiusKm: venues.DefaultRadiusKm,
		Limit:    params.ParseLimit(q, venues.DefaultNearbyLimit, maxNearbyLimit),
	}
	if radius != nil {
		nq.RadiusKm = *radius
	}
	return nq, nil
}

func parseBounds(q url.Values) (geo.Bounds, error) {
	var (
		b   geo.Bounds
		err error
	)
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"min_lat", &b.MinLat},
		{"max_lat", &b.MaxLat},
		{"min_lng", &b.MinLng},
		{"max_lng", &b.MaxLng},
	} {
		if *f.dst, err = params.RequiredFloat(q, f.key); err != nil {
			return geo.Bounds{}, err
		}
	}
	return b, nil
}

// parseVenueFilter maps the listing query onto a Filter. Unknown region or
// kashrut values are rejected rather than ignored.
func parseVenueFilter(q url.Values) (venues.Filter, error) {
	var f venues.Filter

	if s := strings.TrimSpace(q.Get("region")); s != "" {
		region, err := venues.ParseRegion(s)
		if err != nil {
			return f, err
		}
		f.Region = &region
	}
	if s := strings.TrimSpace(q.Get("kashrut")); s != "" {
		kashrut, err := venues.ParseKashrut(s)
		if err != nil {
			return f, err
		}
		f.Kashrut = &kashrut
	}
	f.MeatType = strings.TrimSpace(q.Get("meat_type"))
	f.Style = strings.TrimSpace(q.Get("style"))

	price, err := params.Int(q, "price_range")
	if err != nil {
		return f, err
	}
	f.PriceRange = price

	minRating, err := params.Float(q, "min_rating")
	if err != nil {
		return f, err
	}
	f.MinRating = minRating

	return f, nil
}

// filterCacheParts renders f in a fixed field order so equal filters share a key.
func filterCacheParts(f venues.Filter) []string {
	parts := []string{"list", "", "", strings.ToLower(f.MeatType), strings.ToLower(f.Style), "", ""}
	if f.Region != nil {
		parts[1] = string(*f.Region)
	}
	if f.Kashrut != nil {
		parts[2] = string(*f.Kashrut)
	}
	if f.PriceRange != nil {
		parts[5] = strconv.Itoa(*f.PriceRange)
	}
	if f.MinRating != nil {
		parts[6] = formatFloat(*f.MinRating)
	}
	return parts
}

// nearbyVenuesHandler godoc
//
//	@Summary		Venues near a point
//	@Description	Returns venues within radius km of (lat, lng), nearest first, each with its distance
//	@Tags			venues
//	@Produce		json
//	@Param			lat		query		number	true	"Latitude"
//	@Param			lng		query		number	true	"Longitude"
//	@Param			radius	query		number	false	"Radius in km (default 10)"
//	@Param			limit	query		int		false	"Max results (default 20, max 100)"
//	@Success		200		{array}		venues.NearbyVenue
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/venues/nearby [get]
func (app *application) nearbyVenuesHandler(w http.ResponseWriter, r *http.Request) {
	nq, err := parseNearbyQuery(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := []string{"nearby", formatFloat(nq.Center.Lat), formatFloat(nq.Center.Lng), formatFloat(nq.RadiusKm), strconv.Itoa(nq.Limit)}
	result, err := cache.GetOrLoad(r.Context(), app.cache, key, func() ([]venues.NearbyVenue, error) {
		return venues.Nearby(r.Context(), app.store.Venues, nq)
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// venuesInBoundsHandler godoc
//
//	@Summary		Venues inside a map viewport
//	@Tags			venues
//	@Produce		json
//	@Param			min_lat	query		number	true	"South edge"
//	@Param			max_lat	query		number	true	"North edge"
//	@Param			min_lng	query		number	true	"West edge"
//	@Param			max_lng	query		number	true	"East edge"
//	@Success		200		{array}		venues.Venue
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/venues/bounds [get]
func (app *application) venuesInBoundsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := parseBounds(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := []string{"bounds", formatFloat(b.MinLat), formatFloat(b.MaxLat), formatFloat(b.MinLng), formatFloat(b.MaxLng)}
	result, err := cache.GetOrLoad(r.Context(), app.cache, key, func() ([]venues.Venue, error) {
		return venues.InBounds(r.Context(), app.store.Venues, b)
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listVenuesHandler godoc
//
//	@Summary		Filter venues
//	@Description	Lists venues matching every supplied filter. meat_type and style match case-insensitive substrings.
//	@Tags			venues
//	@Produce		json
//	@Param			region		query		string	false	"north|center|south|jerusalem|shfela"
//	@Param			kashrut		query		string	false	"none|regular|mehadrin|badatz"
//	@Param			meat_type	query		string	false	"Meat type"
//	@Param			style		query		string	false	"Style"
//	@Param			price_range	query		int		false	"1-3"
//	@Param			min_rating	query		number	false	"Minimum average rating"
//	@Success		200			{array}		venues.Venue
//	@Failure		400			{object}	error
//	@Failure		500			{object}	error
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseVenueFilter(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := cache.GetOrLoad(r.Context(), app.cache, filterCacheParts(f), func() ([]venues.Venue, error) {
		return venues.Search(r.Context(), app.store.Venues, f)
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVenueHandler godoc
//
//	@Summary		Get a venue
//	@Tags			venues
//	@Produce		json
//	@Param			venueID	path		int	true	"Venue ID"
//	@Success		200		{object}	venues.Venue
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := idParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := cache.GetOrLoad(r.Context(), app.cache, []string{"venue", strconv.FormatInt(venueID, 10)}, func() (*venues.Venue, error) {
		return app.store.Venues.GetByID(r.Context(), venueID)
	})
	if err != nil {
		if errors.Is(err, venues.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getVenueReviewsHandler godoc
//
//	@Summary		List a venue's reviews
//	@Description	Newest first
//	@Tags			reviews
//	@Produce		json
//	@Param			venueID	path		int	true	"Venue ID"
//	@Success		200		{array}		venuereviews.Review
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Router			/venues/{venueID}/reviews [get]
func (app *application) getVenueReviewsHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := idParam(r, "venueID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviews, err := app.store.Reviews.GetReviews(r.Context(), venueID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reviews); err != nil {
		app.internalServerError(w, r, err)
	}
}
