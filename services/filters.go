package services

import "gamify/models"

// MatchesFilters evaluates the achievement's vertical-scoped filters
// against the event. An achievement without filters matches everything.
// Each configured, non-empty list must contain the event's value for
// the corresponding field; a field absent from the event never fails a
// filter.
func MatchesFilters(a *models.Achievement, ev *models.ActionEvent) bool {
	fs := a.FilterSet()
	if fs.Empty() {
		return true
	}

	switch a.Vertical {
	case models.VerticalCasino, models.VerticalLiveCasino:
		return casinoMatch(fs.Casino, ev)
	case models.VerticalSportsbook:
		return sportsbookMatch(fs.Sportsbook, ev)
	case models.VerticalCrossVertical:
		if fs.Cross == nil {
			return true
		}
		return casinoMatch(fs.Cross.Casino, ev) && sportsbookMatch(fs.Cross.Sports, ev)
	}
	return true
}

func casinoMatch(f *models.CasinoFilters, ev *models.ActionEvent) bool {
	if f == nil {
		return true
	}
	return listMatch(f.Providers, ev.Provider) &&
		listMatch(f.GameCategories, ev.Category) &&
		listMatch(f.Games, ev.GameID)
}

func sportsbookMatch(f *models.SportsbookFilters, ev *models.ActionEvent) bool {
	if f == nil {
		return true
	}
	return listMatch(f.SportTypes, ev.SportType) &&
		listMatch(f.Countries, ev.Country) &&
		listMatch(f.Leagues, ev.League) &&
		listMatch(f.Events, ev.EventID) &&
		listMatch(f.MarketTypes, ev.MarketType)
}

// listMatch passes when the filter list is empty, the event does not
// carry the field, or the list contains the event's value.
func listMatch(filter []string, value string) bool {
	if len(filter) == 0 || value == "" {
		return true
	}
	for _, v := range filter {
		if v == value {
			return true
		}
	}
	return false
}
