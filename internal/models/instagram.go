package models

type GridPhoto struct {
	ID  string `json:"id"`
	Url string `json:"url"`
}

type InstagramProfile struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	DisplayName     string       `json:"displayName"`
	Bio             string       `json:"bio"`
	Avatar          string       `json:"avatar,omitempty"`
	Posts           int          `json:"posts"`
	Followers       string       `json:"followers"`
	Following       string       `json:"following"`
	IsFollowing     bool         `json:"isFollowing"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	GridPhotos      []*GridPhoto `json:"gridPhotos"`
}

func FindInstagramProfile(profiles []*InstagramProfile, id string) *InstagramProfile {
	for _, p := range profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}
