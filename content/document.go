package content

// Document is the full multilingual content record stored in the data file.
type Document struct {
	Languages       []string               `json:"languages"`
	DefaultLanguage string                 `json:"defaultLanguage"`
	Translations    map[string]Translation `json:"translations"`
}

// Translation is the per-language content subtree.
type Translation struct {
	Meta      Meta      `json:"meta"`
	Hero      Hero      `json:"hero"`
	InfoStrip InfoStrip `json:"infoStrip"`
	Guide     Guide     `json:"guide"`
	Catalog   Catalog   `json:"catalog"`
	Tips      Tips      `json:"tips"`
	FAQ       FAQ       `json:"faq"`
	Footer    Footer    `json:"footer"`
}

type Meta struct {
	SiteTitle   string `json:"siteTitle"`
	SiteTagline string `json:"siteTagline"`
	DiscordURL  string `json:"discordUrl"`
	LastUpdated string `json:"lastUpdated"`
}

type Hero struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	PrimaryCta   Link   `json:"primaryCta"`
	SecondaryCta Link   `json:"secondaryCta"`
	Logo         Logo   `json:"logo"`
}

// Link is a call-to-action button. Target and Rel are optional.
type Link struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Target string `json:"target,omitempty"`
	Rel    string `json:"rel,omitempty"`
}

type Logo struct {
	Visible bool   `json:"visible"`
	URL     string `json:"url"`
}

type InfoStrip struct {
	Enabled bool       `json:"enabled"`
	Cards   []InfoCard `json:"cards"`
}

type InfoCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Guide struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Steps       []GuideStep `json:"steps"`
}

type GuideStep struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Commands []string `json:"commands"`
}

// Catalog keeps Subtitle and the legacy Description side by side; see
// coerceCatalog for how one backfills the other.
type Catalog struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	CtaLabel    string     `json:"ctaLabel"`
	CtaHref     string     `json:"ctaHref"`
	Categories  []Category `json:"categories"`
}

type Category struct {
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Commands []Command `json:"commands"`
}

type Command struct {
	Label       string `json:"label"`
	Usage       string `json:"usage"`
	Description string `json:"description"`
}

type Tips struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

type FAQ struct {
	Title string    `json:"title"`
	Items []FAQItem `json:"items"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Footer struct {
	Text  string       `json:"text"`
	Links []FooterLink `json:"links"`
}

// FooterLink always carries target and rel, unlike the hero Link.
type FooterLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Target string `json:"target"`
	Rel    string `json:"rel"`
}

// Has reports whether code is one of the document languages.
func (d Document) Has(code string) bool {
	for _, c := range d.Languages {
		if c == code {
			return true
		}
	}
	return false
}

// Translation returns the translation for code, or an empty one.
func (d Document) Translation(code string) Translation {
	if t, ok := d.Translations[code]; ok {
		return t
	}
	return emptyTranslation()
}

// Resolve picks the active language for a requested code. Invalid or unknown
// codes fall back to the default language.
func (d Document) Resolve(requested string) (string, Translation) {
	code := NormalizeLanguageCode(requested)
	if code == "" || !d.Has(code) {
		code = d.DefaultLanguage
	}
	return code, d.Translation(code)
}

func emptyTranslation() Translation {
	return Translation{
		InfoStrip: InfoStrip{Cards: []InfoCard{}},
		Guide:     Guide{Steps: []GuideStep{}},
		Catalog:   Catalog{Categories: []Category{}},
		Tips:      Tips{Items: []string{}},
		FAQ:       FAQ{Items: []FAQItem{}},
		Footer:    Footer{Links: []FooterLink{}},
	}
}
