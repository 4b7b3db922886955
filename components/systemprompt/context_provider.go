package systemprompt

// ContextProvider is an interface that defines the title and info of a context provider
type ContextProvider interface {
	Title() string
	Info() string
}

// StaticProvider is a fixed title/info context provider.
type StaticProvider struct {
	title string
	info  string
}

func NewStaticProvider(title, info string) *StaticProvider {
	return &StaticProvider{
		title: title,
		info:  info,
	}
}

func (p StaticProvider) Title() string {
	return p.title
}

func (p StaticProvider) Info() string {
	return p.info
}
