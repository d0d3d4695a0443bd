package handlers

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ZacxDev/commands-site/content"
	"github.com/ZacxDev/commands-site/templates"
)

// DisplayDateLayout formats the "last updated" date on the public page.
const DisplayDateLayout = "02 Jan 2006"

const lastUpdateToken = "{{last_update}}"

// Fallback copy shown when a field is empty.
const (
	defaultSiteTitle        = "MoonLand Commands"
	defaultSiteTagline      = "Documentatie rapida pentru jucatori MoonLand"
	defaultDiscordURL       = "https://discord.moonland.ro/"
	defaultHeroTitle        = "Descopera comenzile MoonLand"
	defaultHeroDescription  = "Ghid complet pentru comenzile serverului MoonLand."
	defaultPrimaryCtaLabel  = "Catalog comenzi"
	defaultPrimaryCtaHref   = "#catalog"
	defaultGuideTitle       = "Ghid rapid"
	defaultGuideDescription = "Descopera pasii esentiali pentru a profita la maximum de server."
	defaultStepTitle        = "Pas"
	defaultMissingText      = "Descriere indisponibila."
	defaultCatalogTitle     = "Catalog complet"
	defaultCategoryTitle    = "Categorie"
	defaultCommand          = "/cmd"
	defaultTipsTitle        = "Sfaturi utile"
	defaultFAQTitle         = "Intrebari frecvente"
	defaultQuestion         = "Intrebare"
	defaultAnswer           = "Raspuns indisponibil."
	defaultFooterText       = "MoonLand Network - Comunitate Minecraft"
	defaultLinkTarget       = "_blank"
	defaultLinkRel          = "noopener"
)

// dateLayouts are the stored lastUpdated formats understood by the page.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DisplayDateLayout,
	"02.01.2006",
	"2006/01/02",
}

type languageOption struct {
	Code          string
	URL           string
	Label         string
	FlagIconClass string
	FlagEmoji     string
	Active        bool
}

type linkView struct {
	Label  string
	Href   string
	Target string
	Rel    string
}

type infoCardView struct {
	Icon  string
	Title string
	Text  string
}

type stepView struct {
	Title    string
	Summary  string
	Commands []string
}

type commandView struct {
	Label       string
	Usage       string
	Description string
}

type categoryView struct {
	Title    string
	Summary  string
	Commands []commandView
}

type faqView struct {
	Question string
	Answer   template.HTML
}

// publicPage is the display model of one translation with every fallback
// already applied.
type publicPage struct {
	Lang        string
	SiteTitle   string
	SiteTagline string

	ShowLanguages bool
	Languages     []languageOption

	HeroTitle        string
	HeroDescription  string
	PrimaryCta       linkView
	ShowSecondaryCta bool
	SecondaryCta     linkView
	LogoURL          string
	LastUpdate       string

	ShowInfoStrip bool
	InfoCards     []infoCardView

	GuideTitle       string
	GuideDescription string
	Steps            []stepView

	CatalogTitle    string
	CatalogSubtitle string
	ShowCatalogCta  bool
	CatalogCtaLabel string
	CatalogCtaHref  string
	Categories      []categoryView

	TipsTitle string
	TipsIntro string
	Tips      []string

	FAQTitle string
	FAQ      []faqView

	FooterText      string
	ShowFooterLinks bool
	FooterLinks     []linkView
}

// languageURL builds the switcher link for code.
type languageURL func(code string) string

// pathLanguageURL links to the /{lang}/ form of the page, which is also
// what the static export writes.
func pathLanguageURL(code string) string {
	return "/" + code + "/"
}

func buildPublicPage(doc content.Document, active string, labels content.Labels, lastModified string, url languageURL) publicPage {
	t := doc.Translation(active)

	page := publicPage{
		Lang:        active,
		SiteTitle:   fallback(t.Meta.SiteTitle, defaultSiteTitle),
		SiteTagline: fallback(t.Meta.SiteTagline, defaultSiteTagline),
	}

	if len(doc.Languages) > 1 {
		page.ShowLanguages = true
		for _, code := range doc.Languages {
			meta := labels.Meta(code)
			page.Languages = append(page.Languages, languageOption{
				Code:          code,
				URL:           url(code),
				Label:         labels.Display(code),
				FlagIconClass: meta.FlagIconClass,
				FlagEmoji:     meta.FlagEmoji,
				Active:        code == active,
			})
		}
	}

	rawLastUpdate := strings.TrimSpace(t.Meta.LastUpdated)
	if rawLastUpdate == "" {
		rawLastUpdate = lastModified
	}
	page.LastUpdate = formatDisplayDate(rawLastUpdate)

	page.HeroTitle = fallback(t.Hero.Title, defaultHeroTitle)
	page.HeroDescription = fallback(t.Hero.Description, defaultHeroDescription)
	page.PrimaryCta = linkView{
		Label:  fallback(t.Hero.PrimaryCta.Label, defaultPrimaryCtaLabel),
		Href:   fallback(t.Hero.PrimaryCta.Href, defaultPrimaryCtaHref),
		Target: t.Hero.PrimaryCta.Target,
		Rel:    t.Hero.PrimaryCta.Rel,
	}
	if secondary := t.Hero.SecondaryCta; secondary.Label != "" && secondary.Href != "" {
		page.ShowSecondaryCta = true
		page.SecondaryCta = linkView{Label: secondary.Label, Href: secondary.Href, Target: secondary.Target, Rel: secondary.Rel}
	}
	if t.Hero.Logo.Visible && strings.TrimSpace(t.Hero.Logo.URL) != "" {
		page.LogoURL = t.Hero.Logo.URL
	}

	if t.InfoStrip.Enabled && len(t.InfoStrip.Cards) > 0 {
		page.ShowInfoStrip = true
		for _, card := range t.InfoStrip.Cards {
			page.InfoCards = append(page.InfoCards, infoCardView{
				Icon:  card.Icon,
				Title: card.Title,
				Text:  strings.ReplaceAll(card.Description, lastUpdateToken, page.LastUpdate),
			})
		}
	}

	page.GuideTitle = fallback(t.Guide.Title, defaultGuideTitle)
	page.GuideDescription = fallback(t.Guide.Description, defaultGuideDescription)
	for _, step := range t.Guide.Steps {
		page.Steps = append(page.Steps, stepView{
			Title:    fallback(step.Title, defaultStepTitle),
			Summary:  fallback(step.Summary, defaultMissingText),
			Commands: step.Commands,
		})
	}

	discordURL := fallback(t.Meta.DiscordURL, defaultDiscordURL)
	page.CatalogTitle = fallback(t.Catalog.Title, defaultCatalogTitle)
	page.CatalogSubtitle = strings.TrimSpace(t.Catalog.Subtitle)
	page.CatalogCtaLabel = strings.TrimSpace(t.Catalog.CtaLabel)
	page.CatalogCtaHref = fallback(t.Catalog.CtaHref, discordURL)
	page.ShowCatalogCta = page.CatalogCtaLabel != "" && page.CatalogCtaHref != ""
	for _, category := range t.Catalog.Categories {
		view := categoryView{
			Title:   fallback(category.Title, defaultCategoryTitle),
			Summary: fallback(category.Summary, defaultMissingText),
		}
		for _, command := range category.Commands {
			view.Commands = append(view.Commands, commandView{
				Label:       fallback(command.Label, defaultCommand),
				Usage:       fallback(command.Usage, defaultCommand),
				Description: fallback(command.Description, defaultMissingText),
			})
		}
		page.Categories = append(page.Categories, view)
	}

	page.TipsTitle = fallback(t.Tips.Title, defaultTipsTitle)
	page.TipsIntro = strings.TrimSpace(t.Tips.Description)
	page.Tips = t.Tips.Items

	page.FAQTitle = fallback(t.FAQ.Title, defaultFAQTitle)
	for _, item := range t.FAQ.Items {
		answer := renderAnswer(item.Answer)
		if answer == "" {
			answer = template.HTML(template.HTMLEscapeString(defaultAnswer))
		}
		page.FAQ = append(page.FAQ, faqView{
			Question: fallback(item.Question, defaultQuestion),
			Answer:   answer,
		})
	}

	page.FooterText = fallback(t.Footer.Text, defaultFooterText)
	for _, link := range t.Footer.Links {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.Href) == "" {
			continue
		}
		page.FooterLinks = append(page.FooterLinks, linkView{
			Label:  link.Label,
			Href:   link.Href,
			Target: fallback(link.Target, defaultLinkTarget),
			Rel:    fallback(link.Rel, defaultLinkRel),
		})
	}
	page.ShowFooterLinks = len(page.FooterLinks) > 0

	return page
}

// formatDisplayDate re-formats a stored date for display. Unparseable
// values show today's date.
func formatDisplayDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(DisplayDateLayout)
		}
	}
	return time.Now().Format(DisplayDateLayout)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// resolveLanguage picks the language for a public request: the {lang} path
// segment, then the lang query parameter, then Accept-Language. ok is false
// when the path names a language the document does not have.
func resolveLanguage(doc content.Document, r *http.Request) (code string, ok bool) {
	if segment, present := mux.Vars(r)["lang"]; present {
		code = content.NormalizeLanguageCode(segment)
		return code, code != "" && doc.Has(code)
	}
	if r.URL.Query().Has("lang") {
		code, _ = doc.Resolve(r.URL.Query().Get("lang"))
		return code, true
	}
	return doc.Match(r.Header.Get("Accept-Language")), true
}

func (s *site) publicPageHandler(w http.ResponseWriter, r *http.Request) {
	doc := content.ForDisplay(s.store.Read())
	active, ok := resolveLanguage(doc, r)
	if !ok {
		Custom404Handler(w, r)
		return
	}

	page := PageFunc(func(rc *RequestContext, r *http.Request) (string, error) {
		labels := content.LoadLabels(rc.Config.Paths.LanguageLabels)
		view := buildPublicPage(doc, active, labels, s.store.LastModified(time.DateOnly), pathLanguageURL)

		ctx := newPlushContext(view.SiteTitle)
		ctx.Set("lang", active)
		ctx.Set("description", view.SiteTagline)
		ctx.Set("canonical", canonicalURL(rc.Config.Server.Origin, active))
		ctx.Set("page", view)
		return templates.RenderInLayout(templates.BaseLayout, "index.plush.html", ctx)
	})
	servePage(w, r, page, http.StatusOK)
}

func canonicalURL(origin, code string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return ""
	}
	return origin + pathLanguageURL(code)
}
