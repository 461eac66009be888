package park

// Markup signatures of the fields on an nps.gov park detail page.
const (
	selectorZipcode  = "span.postal-code"
	selectorPhone    = "span.tel"
	selectorCity     = "span[itemprop=addressLocality]"
	selectorState    = "span[itemprop=addressRegion]"
	selectorName     = "a.Hero-title"
	selectorCategory = "span.Hero-designation"
)
