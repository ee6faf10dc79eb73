package model

// Location is a row of the shop/location master table.
type Location struct {
	LocationCode int64   `db:"locationcode"`
	LocationName *string `db:"locationname"`
	Address      *string `db:"address"`
	Fax          *string `db:"fax"`
	EmailID      *string `db:"emailid"`
	Manager      *string `db:"manager"`
}

type LocationResponse struct {
	LocationCode *int64 `json:"location_code"`
	LocationName string `json:"location_name"`
	Address      string `json:"address"`
	Fax          string `json:"fax"`
	EmailID      string `json:"email_id"`
	Manager      string `json:"manager"`
	Found        bool   `json:"found"`
}

func (l *Location) ToResponse() LocationResponse {
	var code *int64
	if l.LocationCode != 0 {
		c := l.LocationCode
		code = &c
	}

	return LocationResponse{
		LocationCode: code,
		LocationName: deref(l.LocationName),
		Address:      deref(l.Address),
		Fax:          deref(l.Fax),
		EmailID:      deref(l.EmailID),
		Manager:      deref(l.Manager),
		Found:        true,
	}
}

// LookupMiss is the 404 body of the employee and location lookups.
type LookupMiss struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}
