package content

import (
	"strings"

	"github.com/tidwall/gjson"
)

// heading trims free text that the editor treats as a single-line heading.
func (m mode) heading(s string) string {
	if m == strict {
		return strings.TrimSpace(s)
	}
	return s
}

func coerceTranslation(r gjson.Result, m mode) Translation {
	return Translation{
		Meta:      coerceMeta(field(r, "meta")),
		Hero:      coerceHero(field(r, "hero")),
		InfoStrip: coerceInfoStrip(field(r, "infoStrip")),
		Guide:     coerceGuide(field(r, "guide"), m),
		Catalog:   coerceCatalog(field(r, "catalog"), m),
		Tips:      coerceTips(field(r, "tips"), m),
		FAQ:       coerceFAQ(field(r, "faq"), m),
		Footer:    coerceFooter(field(r, "footer")),
	}
}

func coerceMeta(r gjson.Result) Meta {
	return Meta{
		SiteTitle:   str(field(r, "siteTitle")),
		SiteTagline: str(field(r, "siteTagline")),
		DiscordURL:  str(field(r, "discordUrl")),
		LastUpdated: str(field(r, "lastUpdated")),
	}
}

func coerceHero(r gjson.Result) Hero {
	logo := field(r, "logo")
	return Hero{
		Title:        str(field(r, "title")),
		Description:  str(field(r, "description")),
		PrimaryCta:   coerceLink(field(r, "primaryCta")),
		SecondaryCta: coerceLink(field(r, "secondaryCta")),
		Logo: Logo{
			Visible: truthy(field(logo, "visible")),
			URL:     str(field(logo, "url")),
		},
	}
}

func coerceLink(r gjson.Result) Link {
	return Link{
		Label:  str(field(r, "label")),
		Href:   str(field(r, "href")),
		Target: str(field(r, "target")),
		Rel:    str(field(r, "rel")),
	}
}

func coerceInfoStrip(r gjson.Result) InfoStrip {
	cards := make([]InfoCard, 0)
	for _, card := range items(field(r, "cards")) {
		if !card.IsObject() {
			continue
		}
		cards = append(cards, InfoCard{
			Icon:        str(field(card, "icon")),
			Title:       str(field(card, "title")),
			Description: str(present(card, "description", "text")),
		})
	}
	return InfoStrip{
		Enabled: truthy(field(r, "enabled")),
		Cards:   cards,
	}
}

func coerceGuide(r gjson.Result, m mode) Guide {
	steps := make([]GuideStep, 0)
	for _, step := range items(field(r, "steps")) {
		if !step.IsObject() {
			continue
		}
		steps = append(steps, GuideStep{
			Title:    str(field(step, "title")),
			Summary:  str(present(step, "summary", "description")),
			Commands: coerceStringList(field(step, "commands"), m),
		})
	}
	return Guide{
		Title:       m.heading(str(field(r, "title"))),
		Description: m.heading(str(field(r, "description"))),
		Steps:       steps,
	}
}

// coerceCatalog keeps subtitle and the legacy description field in step:
// subtitle falls back to description only when subtitle is not a string, and
// on persistence an empty description is backfilled from subtitle. Two
// non-empty values that differ are both kept as they are.
func coerceCatalog(r gjson.Result, m mode) Catalog {
	subtitleValue := field(r, "subtitle")
	descriptionValue := field(r, "description")

	var subtitle, description string
	if subtitleValue.Type == gjson.String {
		subtitle = subtitleValue.Str
	} else if descriptionValue.Type == gjson.String {
		subtitle = descriptionValue.Str
	}
	if descriptionValue.Type == gjson.String {
		description = descriptionValue.Str
	}
	subtitle = m.heading(subtitle)
	description = m.heading(description)
	if m == strict && subtitle != "" && description == "" {
		description = subtitle
	}

	categories := make([]Category, 0)
	for _, category := range items(field(r, "categories")) {
		if !category.IsObject() {
			continue
		}
		commands := make([]Command, 0)
		for _, command := range items(field(category, "commands")) {
			if !command.IsObject() {
				continue
			}
			commands = append(commands, Command{
				Label:       str(field(command, "label")),
				Usage:       str(field(command, "usage")),
				Description: str(field(command, "description")),
			})
		}
		categories = append(categories, Category{
			Title:    str(field(category, "title")),
			Summary:  str(field(category, "summary")),
			Commands: commands,
		})
	}

	return Catalog{
		Title:       m.heading(str(field(r, "title"))),
		Subtitle:    subtitle,
		Description: description,
		CtaLabel:    m.heading(str(field(r, "ctaLabel"))),
		CtaHref:     m.heading(str(present(r, "ctaHref", "ctaUrl"))),
		Categories:  categories,
	}
}

func coerceTips(r gjson.Result, m mode) Tips {
	return Tips{
		Title:       m.heading(str(field(r, "title"))),
		Description: m.heading(str(field(r, "description"))),
		Items:       coerceStringList(field(r, "items"), m),
	}
}

func coerceFAQ(r gjson.Result, m mode) FAQ {
	faqItems := make([]FAQItem, 0)
	for _, item := range items(field(r, "items")) {
		if !item.IsObject() {
			continue
		}
		faqItems = append(faqItems, FAQItem{
			Question: str(field(item, "question")),
			Answer:   str(field(item, "answer")),
		})
	}
	return FAQ{
		Title: m.heading(str(field(r, "title"))),
		Items: faqItems,
	}
}

func coerceFooter(r gjson.Result) Footer {
	links := make([]FooterLink, 0)
	for _, link := range items(field(r, "links")) {
		if !link.IsObject() {
			continue
		}
		links = append(links, FooterLink{
			Label:  str(field(link, "label")),
			Href:   str(field(link, "href")),
			Target: str(field(link, "target")),
			Rel:    str(field(link, "rel")),
		})
	}
	return Footer{
		Text:  str(field(r, "text")),
		Links: links,
	}
}

// coerceStringList accepts a list of scalars or a comma-delimited string (the
// editor's text-field form). Delimited input is always trimmed and filtered;
// list input only in strict mode.
func coerceStringList(r gjson.Result, m mode) []string {
	out := make([]string, 0)
	if r.Type == gjson.String {
		return appendTrimmed(out, strings.Split(r.Str, ","))
	}
	var values []string
	for _, v := range items(r) {
		switch v.Type {
		case gjson.String, gjson.Number, gjson.True:
			values = append(values, str(v))
		}
	}
	if m == strict {
		return appendTrimmed(out, values)
	}
	return append(out, values...)
}

func appendTrimmed(out []string, values []string) []string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
