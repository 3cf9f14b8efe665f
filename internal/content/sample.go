package content

import (
	"context"
	"fmt"

	"github.com/kahaaniverse/kahaani/internal/domain"
)

// MemoryProvider serves a fixed set of books held in memory
type MemoryProvider struct {
	catalog []domain.BookMetadata
	books   map[string]*domain.Book
}

// NewMemoryProvider builds a provider from books. Invalid books are skipped.
func NewMemoryProvider(books ...*domain.Book) *MemoryProvider {
	p := &MemoryProvider{
		catalog: []domain.BookMetadata{},
		books:   make(map[string]*domain.Book, len(books)),
	}
	for _, b := range books {
		if b.Validate() != nil {
			continue
		}
		p.catalog = append(p.catalog, b.Metadata())
		p.books[b.ID] = b
	}
	return p
}

func (p *MemoryProvider) GetCatalog(context.Context) []domain.BookMetadata {
	return p.catalog
}

func (p *MemoryProvider) GetBookByID(_ context.Context, id string) (*domain.Book, bool) {
	b, ok := p.books[id]
	return b, ok
}

// NewSampleProvider serves the built-in demo books
func NewSampleProvider() *MemoryProvider {
	return NewMemoryProvider(SampleBooks()...)
}

type samplePage struct {
	en, hi, hn string
}

func buildPages(bookID, suffix string, texts []string) []domain.BookPage {
	pages := make([]domain.BookPage, len(texts))
	for i, text := range texts {
		id := fmt.Sprintf("page-%s-%d", bookID, i+1)
		if suffix != "" {
			id += "-" + suffix
		}
		pages[i] = domain.BookPage{ID: id, Content: text, PageNumber: i + 1}
	}
	return pages
}

func sampleBook(meta domain.BookMetadata, hiTitle, hnTitle string, hiDesc, hnDesc string, content []samplePage) *domain.Book {
	var en, hi, hn []string
	for _, p := range content {
		en = append(en, p.en)
		if p.hi != "" {
			hi = append(hi, p.hi)
		}
		if p.hn != "" {
			hn = append(hn, p.hn)
		}
	}
	return &domain.Book{
		ID:          meta.ID,
		Title:       meta.Title,
		Author:      meta.Author,
		Cover:       meta.Cover,
		Description: meta.Description,
		Genre:       meta.Genre,
		Pages:       buildPages(meta.ID, "", en),
		Languages: map[domain.Language]domain.LanguageBundle{
			domain.LanguageEnglish: {
				Title:       meta.Title,
				Description: meta.Description,
				Pages:       buildPages(meta.ID, "", en),
			},
			domain.LanguageHindi: {
				Title:       hiTitle,
				Description: hiDesc,
				Pages:       buildPages(meta.ID, "hi", hi),
			},
			domain.LanguageHinglish: {
				Title:       hnTitle,
				Description: hnDesc,
				Pages:       buildPages(meta.ID, "hn", hn),
			},
		},
	}
}

// SampleBooks returns the demo catalog. Page counts differ per language.
func SampleBooks() []*domain.Book {
	return []*domain.Book{
		sampleBook(
			domain.BookMetadata{
				ID:          "1",
				Title:       "The Enchanted Chronicles",
				Author:      "Elena Mysticwind",
				Cover:       "covers/book1-cover.jpg",
				Description: "A mystical journey through ancient realms where magic and reality intertwine.",
				Genre:       "Mystery Thriller",
			},
			"जादुई इतिहास", "The Jaadui Chronicles",
			"प्राचीन क्षेत्रों के माध्यम से एक रहस्यमय यात्रा।",
			"Ek mystical journey ancient realms ke through.",
			[]samplePage{
				{
					en: "Chapter 1: The Awakening\n\nMist rolled over the Whispering Woods as Aria stepped past the last village fence. The pendant at her throat had begun to glow.",
					hi: "अध्याय 1: जागृति\n\nफुसफुसाते जंगल पर धुंध छाई थी। आरिया के गले का लॉकेट चमकने लगा था।",
					hn: "Chapter 1: Jaagriti\n\nWhispering Woods par dhund chhayi thi. Aria ka pendant chamakne laga tha.",
				},
				{
					en: "Chapter 2: The Guardian's Test\n\nBeneath the twisted oak a tall figure waited. Three crystals hung in the air, emerald, sapphire and ruby.",
					hi: "अध्याय 2: संरक्षक की परीक्षा\n\nपुराने बरगद के नीचे एक लंबी आकृति इंतज़ार कर रही थी।",
					hn: "Chapter 2: Guardian ki Pariksha\n\nPurane oak ke neeche ek lambi figure wait kar rahi thi.",
				},
				{
					en: "Chapter 3: The Choice\n\nAria closed her eyes and listened. The answer was already there, quiet and certain, like morning light through leaves.",
				},
			},
		),
		sampleBook(
			domain.BookMetadata{
				ID:          "2",
				Title:       "Digital Dreams",
				Author:      "Kai Neonbyte",
				Cover:       "covers/book2-cover.jpg",
				Description: "In a world where reality and virtual existence blur, one hacker discovers the truth.",
				Genre:       "Horror",
			},
			"डिजिटल सपने", "Digital Sapne",
			"एक हैकर सच्चाई की खोज करता है।",
			"Ek hacker truth discover karta hai.",
			[]samplePage{
				{
					en: "Chapter 1: Login\n\nThe city hummed in ultraviolet. Mira jacked in at 03:00, the hour when the network forgot to watch itself.",
					hi: "अध्याय 1: लॉगिन\n\nशहर बैंगनी रोशनी में गूंज रहा था। मीरा रात तीन बजे नेटवर्क में उतरी।",
					hn: "Chapter 1: Login\n\nSheher ultraviolet mein gunj raha tha. Mira raat teen baje network mein utri.",
				},
				{
					en: "Chapter 2: The Mirror Server\n\nEvery file she opened had already been opened. Someone, or something, was reading one step ahead of her.",
					hi: "अध्याय 2: आईना सर्वर\n\nहर फ़ाइल पहले ही खोली जा चुकी थी।",
					hn: "Chapter 2: Mirror Server\n\nHar file pehle hi kholi ja chuki thi.",
				},
			},
		),
		sampleBook(
			domain.BookMetadata{
				ID:          "3",
				Title:       "Whispers of the Heart",
				Author:      "Victoria Rosehaven",
				Cover:       "covers/book3-cover.jpg",
				Description: "A tale of forbidden love set against the backdrop of Victorian England.",
				Genre:       "Mystery Thriller",
			},
			"दिल की फुसफुसाहट", "Dil ki Whispers",
			"विक्टोरियन इंग्लैंड में निषिद्ध प्रेम की कहानी।",
			"Victorian England mein forbidden love ki kahani.",
			[]samplePage{
				{
					en: "Chapter 1: The Letter\n\nThe envelope bore no name, only a pressed violet. Eleanor hid it inside her prayer book before her mother could see.",
					hi: "अध्याय 1: चिट्ठी\n\nलिफ़ाफ़े पर कोई नाम नहीं था, बस एक सूखा बैंगनी फूल।",
					hn: "Chapter 1: Chitthi\n\nLifafe par koi naam nahi tha, bas ek sookha violet phool.",
				},
				{
					en: "Chapter 2: The Garden Gate\n\nAt dusk the gate stood open. Beyond it, lantern light and a voice she had promised to forget.",
					hi: "अध्याय 2: बगीचे का दरवाज़ा\n\nशाम को दरवाज़ा खुला था।",
					hn: "Chapter 2: Garden ka Darwaza\n\nShaam ko darwaza khula tha.",
				},
				{
					en: "Chapter 3: The Ball\n\nA hundred candles, a hundred eyes. She danced with duty and looked only once at the man by the window.",
					hn: "Chapter 3: Ball\n\nSau mombattiyan, sau aankhen. Usne sirf ek baar window ki taraf dekha.",
				},
			},
		),
	}
}
