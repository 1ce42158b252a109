package viewmodel

// NavItem is one link in the navigation bar.
type NavItem struct {
	Label  string
	URL    string
	Page   string
	Active bool
}

var navItems = []NavItem{
	{Label: "Upload", URL: "/", Page: "upload"},
	{Label: "News", URL: "/news", Page: "news"},
}

// Navbar returns the navigation links with the current page marked active.
func Navbar(currentPage string) []NavItem {
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Page == currentPage
		items[i] = item
	}
	return items
}
