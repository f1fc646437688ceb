package service

import (
	"regexp"
	"strings"
)

// Topic names
const (
	TopicInvestment          = "investment"
	TopicBusinessDevelopment = "business_development"
	TopicTax                 = "tax"
	TopicMarketing           = "marketing"
	TopicTeam                = "team"
	TopicContact             = "contact"
	TopicPrice               = "price"
	TopicBlog                = "blog"
	TopicGreeting            = "greeting"
	TopicThanks              = "thanks"
)

// FallbackReply is returned when no topic matches.
const FallbackReply = "Thank you for your message! I can help you with information about our investment consulting, business development, tax advisory and marketing services. You can also ask about our team, pricing or how to get in touch. What would you like to know?"

type topic struct {
	name  string
	match func(msg string) bool
	reply string
}

func anyOf(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, k := range keywords {
			if strings.Contains(msg, k) {
				return true
			}
		}
		return false
	}
}

// greetings must match whole words: "hi" must not fire on "this".
var greetingWords = regexp.MustCompile(`\b(hi|hello|hey|good morning|good afternoon|good evening|xin chào|chào)\b`)

// topics is evaluated in order; the first match wins.
var topics = []topic{
	{
		name:  TopicInvestment,
		match: anyOf("investment", "invest", "portfolio", "capital"),
		reply: "Our investment consulting team helps you evaluate opportunities, structure deals and manage risk. We cover market entry studies, feasibility analysis, M&A support and investment licensing. Would you like to book a free initial consultation?",
	},
	{
		name:  TopicBusinessDevelopment,
		match: anyOf("business development", "business plan", "strategy", "expand", "growth"),
		reply: "We support business development from strategy to execution: market research, partner search, business planning and go-to-market roadmaps. Tell us about your goals and we'll suggest the right engagement.",
	},
	{
		name:  TopicTax,
		match: anyOf("tax", "accounting", "vat", "audit"),
		reply: "Our tax advisory covers corporate income tax, VAT, transfer pricing, tax health checks and compliance filings. We also help with tax planning for new investments. Would you like one of our tax consultants to contact you?",
	},
	{
		name:  TopicMarketing,
		match: anyOf("marketing", "brand", "advertis", "seo", "social media"),
		reply: "Our marketing services include brand positioning, digital campaigns, content and SEO, and market research. We tailor every plan to your audience and budget.",
	},
	{
		name:  TopicTeam,
		match: anyOf("team", "consultant", "expert", "who are you", "staff"),
		reply: "Our team brings together experienced consultants in investment, tax, legal and marketing. You can meet them on our Team page, and we'll match you with the right expert for your project.",
	},
	{
		name:  TopicContact,
		match: anyOf("contact", "email", "phone", "call", "address", "office", "reach"),
		reply: "You can reach us through the contact form on our Contact page, by email or by phone during business hours. Leave your details and a consultant will get back to you within one business day.",
	},
	{
		name:  TopicPrice,
		match: anyOf("price", "pricing", "cost", "fee", "how much", "quote"),
		reply: "Our fees depend on the scope of each engagement. After a free initial consultation we send a detailed proposal with a fixed quote. Would you like to request one?",
	},
	{
		name:  TopicBlog,
		match: anyOf("blog", "article", "news", "insight", "post"),
		reply: "Our blog publishes regular insights on investment, tax updates, business strategy and marketing trends. Visit the Blog page or subscribe to our newsletter to stay informed.",
	},
	{
		name:  TopicGreeting,
		match: greetingWords.MatchString,
		reply: "Hello! Welcome to our consulting firm. How can I help you today? You can ask about our services, team, pricing or how to contact us.",
	},
	{
		name:  TopicThanks,
		match: anyOf("thank", "thanks", "cảm ơn"),
		reply: "You're welcome! If you have any other questions, feel free to ask. We're always happy to help.",
	},
}

// Respond classifies msg against the ordered topics and returns the canned
// reply with the matched topic name ("" for the fallback).
func Respond(msg string) (reply, topicName string) {
	normalized := strings.ToLower(strings.TrimSpace(msg))
	for _, t := range topics {
		if t.match(normalized) {
			return t.reply, t.name
		}
	}
	return FallbackReply, ""
}
