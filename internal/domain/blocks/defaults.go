package blocks

import "log"

// Built-in block types offered by the palette.
const (
	HeroBanner      = "Hero Banner"
	AboutSection    = "About Section"
	FacultyShowcase = "Faculty Showcase"
	EventsCalendar  = "Events Calendar"
	PhotoGallery    = "Photo Gallery"
	ContactForm     = "Contact Form"
	NewsUpdates     = "News & Updates"
	Testimonials    = "Testimonials"
	CoursePricing   = "Course Pricing"
)

// DefaultRegistry returns a registry holding every built-in block type.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults adds the built-in block types to reg. Types already present
// are left alone.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}
	for _, def := range builtins() {
		if reg.Has(def.Type) {
			continue
		}
		if err := reg.Register(def); err != nil {
			log.Printf("[blocks] register %q: %v", def.Type, err)
		}
	}
}

func builtins() []Definition {
	return []Definition{
		{
			Type:        HeroBanner,
			Description: "Full-width banner with headline and call to action",
			Defaults: Props{
				"title":           "Welcome to Our School",
				"subtitle":        "Inspiring minds, shaping futures",
				"buttonText":      "Learn More",
				"buttonLink":      "#about",
				"backgroundImage": "",
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "subtitle", Label: "Subtitle", Kind: KindTextarea},
				{Name: "buttonText", Label: "Button text", Kind: KindText},
				{Name: "buttonLink", Label: "Button link", Kind: KindURL},
				{Name: "backgroundImage", Label: "Background image", Kind: KindURL},
			},
			Render: templateRenderer("hero", `<section class="block block-hero"{{with get . "backgroundImage"}} style="background-image:url('{{.}}')"{{end}}>
<h1>{{get . "title"}}</h1>
<p>{{get . "subtitle"}}</p>
{{with get . "buttonText"}}<a class="button" href="{{get $ "buttonLink"}}">{{.}}</a>{{end}}
</section>`),
		},
		{
			Type:        AboutSection,
			Description: "Mission statement with optional image",
			Defaults: Props{
				"title":   "About Our School",
				"content": "We provide a nurturing environment where every student can grow.",
				"image":   "",
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "content", Label: "Content", Kind: KindMarkdown},
				{Name: "image", Label: "Image", Kind: KindURL},
			},
			Render: templateRenderer("about", `<section class="block block-about" id="about">
<h2>{{get . "title"}}</h2>
<div class="content">{{md . "content"}}</div>
{{with get . "image"}}<img src="{{.}}" alt="{{get $ "title"}}">{{end}}
</section>`),
		},
		{
			Type:        FacultyShowcase,
			Description: "Grid of teachers and staff",
			Defaults: Props{
				"title": "Meet Our Faculty",
				"members": []any{
					map[string]any{"name": "Dr. Sarah Johnson", "role": "Principal", "photo": ""},
					map[string]any{"name": "Mr. David Kim", "role": "Mathematics", "photo": ""},
					map[string]any{"name": "Ms. Amina Diallo", "role": "Sciences", "photo": ""},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "members", Label: "Members", Kind: KindList, Item: []Field{
					{Name: "name", Label: "Name", Kind: KindText},
					{Name: "role", Label: "Role", Kind: KindText},
					{Name: "photo", Label: "Photo", Kind: KindURL},
				}},
			},
			Render: templateRenderer("faculty", `<section class="block block-faculty">
<h2>{{get . "title"}}</h2>
<ul class="grid">{{range items . "members"}}
<li>{{with get . "photo"}}<img src="{{.}}" alt="">{{end}}<strong>{{get . "name"}}</strong> <span>{{get . "role"}}</span></li>{{end}}
</ul>
</section>`),
		},
		{
			Type:        EventsCalendar,
			Description: "Upcoming events list",
			Defaults: Props{
				"title": "Upcoming Events",
				"events": []any{
					map[string]any{"title": "Open House", "date": "2026-09-12", "location": "Main Hall"},
					map[string]any{"title": "Science Fair", "date": "2026-10-03", "location": "Gymnasium"},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "events", Label: "Events", Kind: KindList, Item: []Field{
					{Name: "title", Label: "Title", Kind: KindText},
					{Name: "date", Label: "Date", Kind: KindText},
					{Name: "location", Label: "Location", Kind: KindText},
				}},
			},
			Render: templateRenderer("events", `<section class="block block-events">
<h2>{{get . "title"}}</h2>
<ol>{{range items . "events"}}
<li><time>{{get . "date"}}</time> <strong>{{get . "title"}}</strong> <span>{{get . "location"}}</span></li>{{end}}
</ol>
</section>`),
		},
		{
			Type:        PhotoGallery,
			Description: "Image grid with captions",
			Defaults: Props{
				"title": "Campus Life",
				"images": []any{
					map[string]any{"url": "/images/campus-1.jpg", "caption": "Library"},
					map[string]any{"url": "/images/campus-2.jpg", "caption": "Sports day"},
					map[string]any{"url": "/images/campus-3.jpg", "caption": "Art studio"},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "images", Label: "Images", Kind: KindList, Item: []Field{
					{Name: "url", Label: "Image", Kind: KindURL},
					{Name: "caption", Label: "Caption", Kind: KindText},
				}},
			},
			Render: templateRenderer("gallery", `<section class="block block-gallery">
<h2>{{get . "title"}}</h2>
<div class="grid">{{range items . "images"}}
<figure><img src="{{get . "url"}}" alt="{{get . "caption"}}"><figcaption>{{get . "caption"}}</figcaption></figure>{{end}}
</div>
</section>`),
		},
		{
			Type:        ContactForm,
			Description: "Contact details and enquiry form",
			Defaults: Props{
				"title":       "Contact Us",
				"email":       "info@school.edu",
				"phone":       "+1 (555) 123-4567",
				"address":     "123 Education Street",
				"submitLabel": "Send Message",
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "email", Label: "Email", Kind: KindText},
				{Name: "phone", Label: "Phone", Kind: KindText},
				{Name: "address", Label: "Address", Kind: KindTextarea},
				{Name: "submitLabel", Label: "Submit label", Kind: KindText},
			},
			Render: templateRenderer("contact", `<section class="block block-contact" id="contact">
<h2>{{get . "title"}}</h2>
<address>{{get . "address"}}<br><a href="mailto:{{get . "email"}}">{{get . "email"}}</a><br>{{get . "phone"}}</address>
<form method="post" action="#contact">
<input name="name" placeholder="Name"><input name="email" type="email" placeholder="Email">
<textarea name="message" placeholder="Message"></textarea>
<button type="submit">{{get . "submitLabel"}}</button>
</form>
</section>`),
		},
		{
			Type:        NewsUpdates,
			Description: "Latest announcements",
			Defaults: Props{
				"title": "News & Updates",
				"items": []any{
					map[string]any{"title": "Enrollment open", "date": "2026-08-01", "summary": "Applications for the new school year are **now open**."},
					map[string]any{"title": "New library wing", "date": "2026-06-15", "summary": "Our students now enjoy a larger reading space."},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "items", Label: "Articles", Kind: KindList, Item: []Field{
					{Name: "title", Label: "Title", Kind: KindText},
					{Name: "date", Label: "Date", Kind: KindText},
					{Name: "summary", Label: "Summary", Kind: KindMarkdown},
				}},
			},
			Render: templateRenderer("news", `<section class="block block-news">
<h2>{{get . "title"}}</h2>
{{range items . "items"}}<article><h3>{{get . "title"}}</h3><time>{{get . "date"}}</time>{{md . "summary"}}</article>
{{end}}</section>`),
		},
		{
			Type:        Testimonials,
			Description: "Quotes from parents and students",
			Defaults: Props{
				"title": "What Parents Say",
				"quotes": []any{
					map[string]any{"quote": "Our children love coming to school every day.", "author": "Maria G.", "role": "Parent"},
					map[string]any{"quote": "The teachers truly care about each student.", "author": "James T.", "role": "Parent"},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "quotes", Label: "Quotes", Kind: KindList, Item: []Field{
					{Name: "quote", Label: "Quote", Kind: KindTextarea},
					{Name: "author", Label: "Author", Kind: KindText},
					{Name: "role", Label: "Role", Kind: KindText},
				}},
			},
			Render: templateRenderer("testimonials", `<section class="block block-testimonials">
<h2>{{get . "title"}}</h2>
{{range items . "quotes"}}<blockquote><p>{{get . "quote"}}</p><footer>{{get . "author"}}{{with get . "role"}}, {{.}}{{end}}</footer></blockquote>
{{end}}</section>`),
		},
		{
			Type:        CoursePricing,
			Description: "Tuition plans",
			Defaults: Props{
				"title": "Tuition & Programs",
				"plans": []any{
					map[string]any{"name": "Primary", "price": "$4,500", "period": "per year", "features": []any{"Small classes", "Arts & music"}},
					map[string]any{"name": "Secondary", "price": "$6,200", "period": "per year", "features": []any{"Lab sciences", "University guidance"}},
				},
			},
			Fields: []Field{
				{Name: "title", Label: "Title", Kind: KindText},
				{Name: "plans", Label: "Plans", Kind: KindList, Item: []Field{
					{Name: "name", Label: "Name", Kind: KindText},
					{Name: "price", Label: "Price", Kind: KindText},
					{Name: "period", Label: "Period", Kind: KindText},
					{Name: "features", Label: "Features", Kind: KindList},
				}},
			},
			Render: templateRenderer("pricing", `<section class="block block-pricing">
<h2>{{get . "title"}}</h2>
<div class="plans">{{range items . "plans"}}
<div class="plan"><h3>{{get . "name"}}</h3><p class="price">{{get . "price"}} <small>{{get . "period"}}</small></p>
<ul>{{range strs . "features"}}<li>{{.}}</li>{{end}}</ul></div>{{end}}
</div>
</section>`),
		},
	}
}
