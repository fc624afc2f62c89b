package internals

import (
	mapset "github.com/deckarep/golang-set/v2"

	"tourism-recommender-server/model"
)

// ratingIndex maps places to their raters and raters to the places they
// rated, built in one pass over the catalog
type ratingIndex struct {
	ratersByPlace map[string]mapset.Set[string]
	placesByUser  map[string][]string
	placeByID     map[string]model.Place
	order         []string
}

func newRatingIndex(places []model.Place) *ratingIndex {
	index := &ratingIndex{
		ratersByPlace: make(map[string]mapset.Set[string], len(places)),
		placesByUser:  make(map[string][]string),
		placeByID:     make(map[string]model.Place, len(places)),
		order:         make([]string, 0, len(places)),
	}
	for _, place := range places {
		if _, seen := index.placeByID[place.PlaceID]; !seen {
			index.order = append(index.order, place.PlaceID)
		}
		index.placeByID[place.PlaceID] = place

		raters, ok := index.ratersByPlace[place.PlaceID]
		if !ok {
			raters = mapset.NewThreadUnsafeSet[string]()
			index.ratersByPlace[place.PlaceID] = raters
		}
		for _, rating := range place.Ratings {
			// several ratings of the same place by one user count once
			if raters.Add(rating.UserID) {
				index.placesByUser[rating.UserID] = append(index.placesByUser[rating.UserID], place.PlaceID)
			}
		}
	}
	return index
}

func (index *ratingIndex) coRaters(userID string) mapset.Set[string] {
	coRaters := mapset.NewThreadUnsafeSet[string]()
	for _, placeID := range index.placesByUser[userID] {
		coRaters = coRaters.Union(index.ratersByPlace[placeID])
	}
	coRaters.Remove(userID)
	return coRaters
}

// FindCoRaters returns the users, other than userID, who rated at least one
// place userID rated, in the order they first appear in the catalog.
func FindCoRaters(userID string, places []model.Place) []string {
	index := newRatingIndex(places)
	coRaters := index.coRaters(userID)

	ordered := make([]string, 0, coRaters.Cardinality())
	seen := mapset.NewThreadUnsafeSet[string]()
	for _, placeID := range index.order {
		for _, rating := range index.placeByID[placeID].Ratings {
			if coRaters.Contains(rating.UserID) && seen.Add(rating.UserID) {
				ordered = append(ordered, rating.UserID)
			}
		}
	}
	return ordered
}

// FindCollaborativeCandidates returns every place rated by a co-rater of
// userID, once each, in catalog order. With excludeRated the places userID
// already rated are left out. A user without ratings gets no candidates.
func FindCollaborativeCandidates(userID string, places []model.Place, excludeRated bool) []model.Place {
	candidates := []model.Place{}
	index := newRatingIndex(places)
	if len(index.placesByUser[userID]) == 0 {
		return candidates
	}

	candidateIDs := mapset.NewThreadUnsafeSet[string]()
	for coRater := range index.coRaters(userID).Iter() {
		candidateIDs.Append(index.placesByUser[coRater]...)
	}
	if excludeRated {
		candidateIDs.RemoveAll(index.placesByUser[userID]...)
	}

	for _, placeID := range index.order {
		if candidateIDs.Contains(placeID) {
			candidates = append(candidates, index.placeByID[placeID])
		}
	}
	return candidates
}
