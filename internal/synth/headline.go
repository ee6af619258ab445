package synth

import "strings"

const (
	namePlaceholder     = "{name}"
	locationPlaceholder = "{location}"
)

// headlineTemplates is the process-wide catalog. It is never modified after
// package initialization.
var headlineTemplates = []string{
	// Local business focus
	"Why {name} is {location}'s Sweetest Spot in 2025",
	"Discover What Makes {name} Stand Out in {location}",
	"{name}: The Hidden Gem of {location}",
	"Here's Why Locals Love {name} in {location}",
	"Experience {location} Through the Eyes of {name}",
	"{name} Is Redefining Quality in {location}",
	"The Secret Behind {name}'s Success in {location}",
	"Why Everyone in {location} Is Talking About {name}",
	"{name}: Where Tradition Meets Innovation in {location}",
	"Top 5 Reasons {name} Dominates the Market in {location}",
	"{name} Is the Talk of the Town in {location} – Here's Why",
	"How {name} Became a Household Name in {location}",
	"{name} Is Setting New Standards in {location}",
	"{name} Brings the Best of Local Flavor to {location}",
	"A Day in {location} Isn't Complete Without Visiting {name}",
	"Why Locals in {location} Swear by {name}",
	"Explore the Unique Charm of {name} in {location}",
	"Uncover the Magic of {name} in the Heart of {location}",
	"{name} Has What {location} Has Been Waiting For",
	"See Why {name} Is Rated #1 in {location}",
	"What Makes {name} a Must-Visit Spot in {location}",
	"Get to Know the Excellence of {name} in {location}",
	"{name} Delivers a One-of-a-Kind Experience in {location}",
	"{name}: The Pride and Passion of {location}",
	"Why {location} Locals Keep Coming Back to {name}",
	"Step Into the World of {name} — A {location} Favorite",

	// Search-oriented
	"Best {name} in {location} - 2025 Customer Reviews & Ratings",
	"{location}'s Top-Rated {name} - What Customers Are Saying",
	"Find the Perfect {name} Experience in {location}",
	"Why Choose {name}? {location} Residents Share Their Stories",
	"{name} Reviews: {location}'s Most Trusted Business",
	"Compare {name} with Other {location} Businesses",
	"{location} Business Spotlight: {name} Success Story",
	"Customer Satisfaction at {name} - {location} Feedback",
	"Local Business Excellence: {name} in {location}",
	"What Sets {name} Apart in {location}?",

	// Industry
	"Restaurant Review: {name} Serves {location}'s Best",
	"Service Excellence: {name} Leads {location} Quality",
	"Retail Spotlight: {name} - {location}'s Shopping Destination",
	"Professional Services: {name} Trusted by {location}",
	"Healthcare Focus: {name} Cares for {location}",
	"Education & Training: {name} Empowers {location}",
	"Technology Solutions: {name} Innovates in {location}",
	"Real Estate: {name} Connects {location} Communities",
	"Automotive: {name} Drives {location} Forward",
	"Fitness & Wellness: {name} Energizes {location}",

	// Seasonal
	"2025 Update: {name} Continues to Impress in {location}",
	"New Year, Same Excellence: {name} in {location}",
	"Spring Forward with {name} - {location}'s Choice",
	"Summer Success: {name} Heats Up {location}",
	"Fall Favorites: {name} Autumn Specials in {location}",
	"Winter Warmth: {name} Brings Comfort to {location}",

	// Community
	"Supporting Local: {name} Strengthens {location}",
	"Community Cornerstone: {name} in {location}",
	"Neighborhood Favorite: {name} Serves {location}",
	"Local Pride: {name} Represents {location} Excellence",
	"Building {location} Together: {name}'s Commitment",
	"From {location}, For {location}: {name}'s Mission",

	// Emoji-led
	"🚀 {name} - {location}'s Fastest Growing Business in 2025",
	"💎 Premium Quality at {name}: {location}'s Finest Choice",
	"🏆 Award-Winning {name} Leads {location} Excellence",
	"🌟 Customer-First Approach: {name} in {location}",
	"📈 Growth Story: How {name} Transformed {location}",
	"🎯 Precision & Quality: {name} Sets {location} Standards",
	"🔥 Hot Trend: {name} is {location}'s New Favorite",
	"💡 Innovation Hub: {name} Drives {location} Forward",
	"🤝 Trusted Partner: {name} Serves {location} Community",
	"⭐ 5-Star Experience: {name} Exceeds {location} Expectations",
	"🎉 Celebrating Success: {name} in {location}",
	"🔝 Top Choice: {name} Dominates {location} Market",
	"💪 Strength & Reliability: {name} in {location}",
	"🎨 Creative Excellence: {name} Inspires {location}",
	"⚡ Fast & Efficient: {name} Delivers in {location}",
	"🌱 Sustainable Growth: {name} Builds {location} Future",
	"🎪 Entertainment Hub: {name} Brings Joy to {location}",
	"🏛️ Heritage & Modernity: {name} Bridges {location} Past & Future",
	"🎓 Expert Knowledge: {name} Educates {location}",
	"💼 Professional Excellence: {name} Serves {location} Business Community",
}

// Templates returns a copy of the default headline catalog.
func Templates() []string {
	return append([]string(nil), headlineTemplates...)
}

// HeadlineEngine picks a template uniformly at random and fills in the
// business name and location. It holds no mutable state.
type HeadlineEngine struct {
	templates []string
}

// NewHeadlineEngine returns an engine over the default catalog.
func NewHeadlineEngine() *HeadlineEngine {
	return &HeadlineEngine{templates: headlineTemplates}
}

// NewHeadlineEngineWith returns an engine over a custom catalog. The slice is
// copied. An empty catalog falls back to the default one.
func NewHeadlineEngineWith(templates []string) *HeadlineEngine {
	if len(templates) == 0 {
		return NewHeadlineEngine()
	}
	return &HeadlineEngine{templates: append([]string(nil), templates...)}
}

// Size returns the number of templates in the catalog.
func (e *HeadlineEngine) Size() int {
	return len(e.templates)
}

// Pick draws one template index from src and renders it.
func (e *HeadlineEngine) Pick(name, location string, src Source) string {
	return Render(e.templates[index(src, len(e.templates))], name, location)
}

// Render substitutes every {name} and {location} placeholder verbatim.
// No escaping or truncation is applied; callers validate input upstream.
func Render(template, name, location string) string {
	r := strings.NewReplacer(namePlaceholder, name, locationPlaceholder, location)
	return r.Replace(template)
}
