package catalog

import "questforge/internal/models"

var defaultQuests = []models.Quest{
	// health
	{ID: "h1", Title: "Drink a big glass of water", Description: "Stay properly hydrated", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryHealth, Tags: []string{"quick", "health"}},
	{ID: "h2", Title: "Walk outside for 5 minutes", Description: "Get some air and move a little", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryHealth, Tags: []string{"outdoors", "movement"}},
	{ID: "h3", Title: "Stretch for 2 minutes", Description: "Loosen up your muscles", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryHealth, Tags: []string{"quick", "body"}},
	{ID: "h4", Title: "Eat a piece of fruit", Description: "Feed your body well", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryHealth, Tags: []string{"nutrition"}},
	{ID: "h5", Title: "Do 10 push-ups", Description: "Build your strength", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryHealth, Tags: []string{"sport", "strength"}},
	{ID: "h6", Title: "Sleep at least 7 hours", Description: "Rest properly", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategoryHealth, Tags: []string{"sleep", "recovery"}},

	// mental
	{ID: "m1", Title: "Meditate for 3 minutes", Description: "Calm your mind", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryMental, Tags: []string{"meditation", "calm"}},
	{ID: "m2", Title: "Write down 3 good things", Description: "Practice gratitude", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryMental, Tags: []string{"gratitude", "writing"}},
	{ID: "m3", Title: "Take 5 deep breaths", Description: "Settle your thoughts", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryMental, Tags: []string{"breathing", "quick"}},
	{ID: "m4", Title: "Go offline for 30 minutes", Description: "Step away from screens", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategoryMental, Tags: []string{"detox", "screens"}},
	{ID: "m5", Title: "Listen to calming music", Description: "Unwind", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryMental, Tags: []string{"music", "relaxation"}},
	{ID: "m6", Title: "Write about how you feel", Description: "Let out what you are feeling", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryMental, Tags: []string{"writing", "emotions"}},

	// creativity
	{ID: "c1", Title: "Write down an idea", Description: "Capture whatever comes to mind", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryCreativity, Tags: []string{"writing", "ideas"}},
	{ID: "c2", Title: "Draw for 5 minutes", Description: "Let your art speak", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryCreativity, Tags: []string{"art", "drawing"}},
	{ID: "c3", Title: "Take a photo", Description: "Capture a moment", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryCreativity, Tags: []string{"photo", "observation"}},
	{ID: "c4", Title: "Make up a short story", Description: "Let your imagination run", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategoryCreativity, Tags: []string{"writing", "imagination"}},
	{ID: "c5", Title: "Listen to new music", Description: "Discover new sounds", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryCreativity, Tags: []string{"music", "discovery"}},
	{ID: "c6", Title: "Rearrange your space", Description: "Bring in some change", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryCreativity, Tags: []string{"organization", "space"}},

	// learning
	{ID: "a1", Title: "Read 3 pages", Description: "Feed your mind", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryLearning, Tags: []string{"reading", "quick"}},
	{ID: "a2", Title: "Learn 3 new words", Description: "Grow your vocabulary", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryLearning, Tags: []string{"vocabulary", "language"}},
	{ID: "a3", Title: "Watch a tutorial", Description: "Learn something new", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryLearning, Tags: []string{"video", "skill"}},
	{ID: "a4", Title: "Listen to an educational podcast", Description: "Learn while you listen", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategoryLearning, Tags: []string{"audio", "culture"}},
	{ID: "a5", Title: "Solve a math exercise", Description: "Train your brain", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryLearning, Tags: []string{"logic", "math"}},
	{ID: "a6", Title: "Research an unfamiliar topic", Description: "Explore new knowledge", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryLearning, Tags: []string{"research", "curiosity"}},

	// social
	{ID: "s1", Title: "Message a friend", Description: "Keep in touch", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategorySocial, Tags: []string{"communication", "friendship"}},
	{ID: "s2", Title: "Compliment someone", Description: "Spread some kindness", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategorySocial, Tags: []string{"kindness", "quick"}},
	{ID: "s3", Title: "Call someone close", Description: "Catch up with them", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategorySocial, Tags: []string{"phone", "family"}},
	{ID: "s4", Title: "Help someone out", Description: "Do someone a favour", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategorySocial, Tags: []string{"altruism", "help"}},
	{ID: "s5", Title: "Talk for 10 minutes", Description: "Have an honest conversation", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategorySocial, Tags: []string{"conversation", "exchange"}},
	{ID: "s6", Title: "Share a discovery", Description: "Pass on what you know", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategorySocial, Tags: []string{"sharing", "knowledge"}},

	// discipline
	{ID: "d1", Title: "Tidy a small area", Description: "Organize your surroundings", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryDiscipline, Tags: []string{"tidying", "organization"}},
	{ID: "d2", Title: "Make your bed", Description: "Start the day on the right foot", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryDiscipline, Tags: []string{"morning", "routine"}},
	{ID: "d3", Title: "Plan your day", Description: "Take 5 minutes to get organized", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryDiscipline, Tags: []string{"planning", "organization"}},
	{ID: "d4", Title: "Finish a pending task", Description: "Cross something off your list", Difficulty: models.DifficultyNormal, Impact: models.ImpactHigh, Category: models.CategoryDiscipline, Tags: []string{"productivity", "achievement"}},
	{ID: "d5", Title: "Get up on time", Description: "Stick to your schedule", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryDiscipline, Tags: []string{"morning", "wake-up"}},
	{ID: "d6", Title: "Keep a commitment", Description: "Be true to your word", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryDiscipline, Tags: []string{"commitment", "word"}},
}
