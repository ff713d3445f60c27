package generation

import (
	"regexp"
	"strings"
)

type Category string

const (
	CategoryBusiness      Category = "business"
	CategoryTechnology    Category = "technology"
	CategoryNature        Category = "nature"
	CategoryFood          Category = "food"
	CategoryTravel        Category = "travel"
	CategorySports        Category = "sports"
	CategoryEducation     Category = "education"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategoryArt           Category = "art"
	CategoryMusic         Category = "music"
	CategoryFinance       Category = "finance"
	CategoryHistory       Category = "history"
	CategoryFashion       Category = "fashion"
	CategoryArchitecture  Category = "architecture"
	CategoryCars          Category = "cars"
	CategorySpace         Category = "space"
	CategoryAnimals       Category = "animals"
	CategoryGaming        Category = "gaming"
	CategoryPolitics      Category = "politics"
	CategoryReligion      Category = "religion"
	CategoryEntertainment Category = "entertainment"
	CategoryMilitary      Category = "military"
	CategoryInnovation    Category = "innovation"
	CategoryMotivation    Category = "motivation"
	CategoryLeadership    Category = "leadership"
	CategoryClimate       Category = "climate"
	CategoryDevelopment   Category = "development"
	CategoryCommunication Category = "communication"
	CategoryDefault       Category = "default"
)

type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

// wordRule matches any of words as a whole word, allowing a trailing plural "s".
func wordRule(c Category, words ...string) categoryRule {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return categoryRule{
		category: c,
		pattern:  regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)s?\b`),
	}
}

// Evaluated top to bottom; the first match wins.
var categoryRules = []categoryRule{
	wordRule(CategoryBusiness, "business", "company", "corporate", "finance", "economy", "market", "stock", "office", "professional", "work"),
	wordRule(CategoryTechnology, "tech", "technology", "computer", "digital", "software", "hardware", "program", "code", "internet", "web", "app", "ai", "robot"),
	wordRule(CategoryNature, "nature", "environment", "eco", "green", "plant", "animal", "wildlife", "forest", "mountain", "ocean", "sea", "beach", "sky", "landscape"),
	wordRule(CategoryFood, "food", "eat", "cuisine", "dish", "meal", "restaurant", "cook", "chef", "kitchen", "recipe", "ingredient", "fruit", "vegetable"),
	wordRule(CategoryTravel, "travel", "tourism", "vacation", "holiday", "trip", "journey", "adventure", "destination", "tour", "city", "country", "world", "explore"),
	wordRule(CategorySports, "sport", "game", "athlete", "team", "play", "competition", "tournament", "championship", "football", "soccer", "basketball", "tennis", "golf"),
	wordRule(CategoryEducation, "education", "learn", "school", "university", "college", "student", "teacher", "professor", "academic", "study", "research", "knowledge"),
	wordRule(CategoryHealth, "health", "medical", "doctor", "hospital", "wellness", "fitness", "exercise", "yoga", "meditation", "mind", "body", "nutrition", "diet"),
	wordRule(CategoryScience, "science", "scientific", "physics", "chemistry", "biology", "experiment", "lab", "theory", "hypothesis", "quantum", "molecule", "atom"),
	wordRule(CategoryArt, "art", "artistic", "paint", "drawing", "sculpture", "creative", "museum", "gallery", "exhibition", "design", "visual", "aesthetic"),
	wordRule(CategoryMusic, "music", "song", "band", "concert", "instrument", "guitar", "piano", "drum", "rhythm", "melody", "symphony", "orchestra"),
	wordRule(CategoryFinance, "finance", "money", "banking", "investment", "fund", "budget", "saving", "loan", "credit", "debt", "trading", "stock"),
	wordRule(CategoryHistory, "history", "historical", "ancient", "century", "civilization", "empire", "king", "queen", "war", "period", "era", "past"),
	wordRule(CategoryFashion, "fashion", "style", "clothing", "dress", "wear", "trend", "designer", "model", "outfit", "accessory", "textile", "collection"),
	wordRule(CategoryArchitecture, "architecture", "building", "structure", "design", "construction", "architect", "skyscraper", "house", "bridge", "tower"),
	wordRule(CategoryCars, "car", "automobile", "vehicle", "driving", "race", "engine", "wheel", "speed", "motor", "automotive", "truck", "sedan"),
	wordRule(CategorySpace, "space", "universe", "galaxy", "planet", "star", "astronomy", "cosmos", "solar", "lunar", "moon", "mars", "astronaut", "nasa"),
	wordRule(CategoryAnimals, "animal", "wildlife", "species", "pet", "dog", "cat", "bird", "fish", "mammal", "reptile", "zoo", "ecosystem"),
	wordRule(CategoryGaming, "game", "gaming", "player", "console", "video", "playstation", "xbox", "nintendo", "esport", "minecraft", "fortnite"),
	wordRule(CategoryPolitics, "politics", "government", "policy", "election", "president", "democracy", "party", "vote", "senator", "law", "congress"),
	wordRule(CategoryReligion, "religion", "faith", "spiritual", "church", "temple", "mosque", "prayer", "god", "belief", "worship", "religious", "sacred"),
	wordRule(CategoryEntertainment, "entertainment", "movie", "film", "cinema", "theater", "show", "celebrity", "actor", "actress", "hollywood", "tv", "television"),
	wordRule(CategoryMilitary, "military", "army", "navy", "air force", "soldier", "war", "weapon", "defense", "strategy", "combat", "security", "tactical"),
	wordRule(CategoryInnovation, "innovation", "innovative", "idea", "invention", "creative", "solution", "progress", "startup", "entrepreneur", "future"),
	wordRule(CategoryMotivation, "motivation", "inspire", "success", "goal", "achieve", "dream", "mindset", "positive", "courage", "determination"),
	wordRule(CategoryLeadership, "leadership", "leader", "manage", "team", "organization", "vision", "influence", "guide", "direct", "executive", "ceo"),
	wordRule(CategoryClimate, "climate", "weather", "change", "global warming", "environment", "sustainable", "carbon", "emission", "temperature"),
	wordRule(CategoryDevelopment, "development", "progress", "grow", "improve", "evolve", "advance", "expansion", "growth", "upgrade", "enhancement"),
	wordRule(CategoryCommunication, "communication", "speak", "talk", "message", "conversation", "present", "discuss", "speech", "dialogue", "interact"),
}

// Categories lists every category in matching priority order, default last.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, r := range categoryRules {
		out = append(out, r.category)
	}
	return append(out, CategoryDefault)
}

// Classify maps a topic and its keywords onto a category.
func Classify(topic string, keywords []string) Category {
	combined := strings.ToLower(strings.Join(append([]string{topic}, keywords...), " "))
	for _, r := range categoryRules {
		if r.pattern.MatchString(combined) {
			return r.category
		}
	}
	return CategoryDefault
}
