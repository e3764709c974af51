package progression

// Chapter is a narrative tier
type Chapter struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Theme      string `json:"theme"`
	XPRequired int    `json:"xp_required"`
}

// Chapters is ordered by ascending XPRequired
var Chapters = []Chapter{
	{ID: 1, Name: "First Steps", Theme: "Discovery", XPRequired: 500},
	{ID: 2, Name: "The Awakening", Theme: "Growth", XPRequired: 1000},
	{ID: 3, Name: "The Forge", Theme: "Mastery", XPRequired: 2000},
	{ID: 4, Name: "The Ascent", Theme: "Excellence", XPRequired: 5000},
}

// ChapterForXP returns the chapter shown for the given cumulative chapter XP.
//
// Meeting a chapter's requirement shows the chapter after it, so 500 XP shows
// chapter 2. Past the last requirement the last chapter is shown. Under the
// first requirement chapter 1 is shown. Callers and the header display rely on
// this look-ahead; keep TestChapterForXPLookahead in step with any change.
func ChapterForXP(chapterXP int) Chapter {
	for i := len(Chapters) - 1; i >= 0; i-- {
		if chapterXP >= Chapters[i].XPRequired {
			if i+1 < len(Chapters) {
				return Chapters[i+1]
			}
			return Chapters[i]
		}
	}
	return Chapters[0]
}

// ChapterByID returns the chapter with the given id
func ChapterByID(id int) (Chapter, bool) {
	for _, c := range Chapters {
		if c.ID == id {
			return c, true
		}
	}
	return Chapter{}, false
}
