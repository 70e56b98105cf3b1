package trends

// keywordRule maps a named category to the keywords that signal it. Rules
// are held in slices because evaluation order decides ties.
type keywordRule struct {
	Name     string
	Keywords []string
}

// approachRule selects a content approach by substring match on a topic name.
type approachRule struct {
	Triggers []string
	Text     string
}

// Lexicon holds every fixed keyword table the pipeline consults. It is
// constructed once, treated as read-only, and passed into each stage.
type Lexicon struct {
	// CategoryRules drives enrichment tagging, evaluated in order.
	CategoryRules []keywordRule
	// TopicRules names latent topics from their top terms, first match wins.
	TopicRules []keywordRule
	// Stopwords are removed from the topic-modeling vocabulary.
	Stopwords map[string]struct{}
	// Approaches maps topic-name fragments to content-approach copy.
	Approaches []approachRule
}

// domain noise terms stripped from hashtag text before topic modeling,
// on top of the standard English stopwords.
var domainStopwords = []string{
	"tiktok", "trend", "video", "challenge", "viral",
	"new", "like", "follow", "share", "hashtag",
}

var englishStopwords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down",
	"in", "out", "on", "off", "over", "under", "again", "further",
	"then", "once", "here", "there", "when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so",
	"than", "too", "very", "can", "will", "just", "don", "should", "now",
}

// DefaultLexicon returns the standard keyword tables used by the pipeline.
func DefaultLexicon() *Lexicon {
	stop := make(map[string]struct{}, len(englishStopwords)+len(domainStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	for _, w := range domainStopwords {
		stop[w] = struct{}{}
	}

	return &Lexicon{
		CategoryRules: []keywordRule{
			{"entertainment", []string{"dance", "challenge", "meme", "funny", "comedy", "viral", "trend"}},
			{"lifestyle", []string{"fashion", "beauty", "outfit", "style", "aesthetic"}},
			{"food", []string{"food", "recipe", "cooking", "meal", "baking", "chef"}},
			{"family", []string{"mother", "mom", "family", "dad", "father", "kid", "parent", "child"}},
			{"travel", []string{"travel", "vacation", "trip", "destination", "journey"}},
			{"fitness", []string{"workout", "fitness", "gym", "exercise", "health"}},
		},
		TopicRules: []keywordRule{
			{"dance", []string{"dance", "dancing", "choreography", "moves", "routine"}},
			{"fashion", []string{"outfit", "fashion", "style", "clothes", "wearing", "aesthetic"}},
			{"food", []string{"food", "recipe", "cooking", "baking", "meal", "delicious", "eat"}},
			{"comedy", []string{"funny", "comedy", "joke", "humor", "laugh", "meme"}},
			{"beauty", []string{"makeup", "skincare", "beauty", "tutorial", "routine"}},
			{"fitness", []string{"workout", "fitness", "gym", "exercise", "training"}},
			{"lifestyle", []string{"morning", "routine", "life", "day", "productive"}},
			{"travel", []string{"travel", "trip", "adventure", "vacation", "destination"}},
			{"education", []string{"learn", "facts", "educational", "lesson", "teaching"}},
			{"gaming", []string{"game", "gaming", "player", "play", "level"}},
			{"music", []string{"song", "music", "sound", "audio", "beat", "remix"}},
		},
		Stopwords: stop,
		Approaches: []approachRule{
			{[]string{"dance", "choreography"}, "Create short dance videos featuring simple choreography that's easy for viewers to learn and recreate."},
			{[]string{"comedy", "funny"}, "Develop humorous skits or situational comedy that's relatable to your audience. Focus on unexpected twists and authenticity."},
			{[]string{"food", "recipe"}, "Share quick recipe tutorials with visually appealing results. Focus on easy-to-make items with common ingredients."},
			{[]string{"fashion", "outfit"}, "Create outfit inspiration videos with styling tips. Focus on trend combinations and accessible fashion choices."},
			{[]string{"beauty", "makeup"}, "Film quick beauty tutorials focusing on specific techniques. Before-and-after transformations perform particularly well."},
			{[]string{"lifestyle"}, "Share authentic day-in-the-life content or productivity hacks that resonate with your target audience."},
			{[]string{"fitness", "workout"}, "Demonstrate effective exercise routines that can be done in small spaces with minimal equipment."},
		},
	}
}

// DefaultTopics is the fixed topic set substituted when modeling cannot
// produce meaningful topics. Fresh slices every call: topics are owned by
// the run that produced them.
func (l *Lexicon) DefaultTopics() []Topic {
	return []Topic{
		{
			ID:       "topic_1",
			Name:     "Entertainment Content",
			Keywords: []string{"dance", "challenge", "funny", "comedy", "trend"},
			Hashtags: []TopicMember{},
			Strength: 0.85,
		},
		{
			ID:       "topic_2",
			Name:     "Lifestyle Content",
			Keywords: []string{"lifestyle", "routine", "daily", "tips", "hacks"},
			Hashtags: []TopicMember{},
			Strength: 0.75,
		},
		{
			ID:       "topic_3",
			Name:     "Food Content",
			Keywords: []string{"food", "recipe", "cooking", "meal", "delicious"},
			Hashtags: []TopicMember{},
			Strength: 0.70,
		},
	}
}

// AudienceInsights is the static audience reference table included in every
// recommendation bundle.
func (l *Lexicon) AudienceInsights() []AudienceInsight {
	return []AudienceInsight{
		{
			Category:            "Entertainment",
			PrimaryDemographic:  "Gen Z (16-24)",
			PeakEngagementTimes: []string{"7-9 PM", "9-11 PM"},
			RetentionDrivers:    "Humor, relatability, and trend participation",
		},
		{
			Category:            "Lifestyle",
			PrimaryDemographic:  "Millennials (25-34)",
			PeakEngagementTimes: []string{"6-8 AM", "8-10 PM"},
			RetentionDrivers:    "Authenticity, aesthetics, and practical tips",
		},
		{
			Category:            "Education",
			PrimaryDemographic:  "Mixed (18-45)",
			PeakEngagementTimes: []string{"12-2 PM", "7-9 PM"},
			RetentionDrivers:    "Concise information, visual demonstrations, and unique facts",
		},
	}
}
