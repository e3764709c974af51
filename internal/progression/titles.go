package progression

// Title is a rank name unlocked at MinLevel
type Title struct {
	MinLevel int
	Name     string
}

// Titles is ordered by ascending MinLevel
var Titles = []Title{
	{MinLevel: 1, Name: "Apprentice"},
	{MinLevel: 4, Name: "Explorer"},
	{MinLevel: 7, Name: "Builder"},
	{MinLevel: 11, Name: "Fire Master"},
}

// TitleForLevel returns the highest title whose threshold is at most level.
// Levels under the first threshold get the first title.
func TitleForLevel(level int) string {
	for i := len(Titles) - 1; i >= 0; i-- {
		if level >= Titles[i].MinLevel {
			return Titles[i].Name
		}
	}
	return Titles[0].Name
}
