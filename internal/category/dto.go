package category

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ResolveResponse struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}
