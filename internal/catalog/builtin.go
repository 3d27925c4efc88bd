package catalog

import "github.com/homedash/homedash-backend/internal/models"

// Builtin returns the catalog of widget and service kinds the app ships with.
func Builtin() *Catalog {
	c := New()

	widgets := []WidgetDef{
		{Type: models.WidgetWeather, Name: "Weather", DefaultTitle: "Weather", DefaultSize: models.SizeMedium,
			DefaultSettings: map[string]any{"location": "auto", "unit": "celsius"}},
		{Type: models.WidgetTasks, Name: "Tasks", DefaultTitle: "Tasks", DefaultSize: models.SizeMedium},
		{Type: models.WidgetNotes, Name: "Notes", DefaultTitle: "Notes", DefaultSize: models.SizeMedium},
		{Type: models.WidgetCalendar, Name: "Calendar", DefaultTitle: "Calendar", DefaultSize: models.SizeLarge},
		{Type: models.WidgetClock, Name: "Clock", DefaultTitle: "Clock", DefaultSize: models.SizeSmall},
		{Type: models.WidgetQuote, Name: "Quote of the Day", DefaultTitle: "Quote", DefaultSize: models.SizeSmall},
		{Type: models.WidgetLinks, Name: "Quick Links", DefaultTitle: "Links", DefaultSize: models.SizeSmall},
		{Type: models.WidgetNews, Name: "News", DefaultTitle: "Latest News", DefaultSize: models.SizeLarge,
			DefaultSettings: map[string]any{"refreshInterval": 30}},
		{Type: models.WidgetNewsSearch, Name: "News Search", DefaultTitle: "News Search", DefaultSize: models.SizeLarge},
		{Type: models.WidgetSocial, Name: "Social Feed", DefaultTitle: "Social", DefaultSize: models.SizeLarge},
		{Type: models.WidgetReddit, Name: "Reddit", DefaultTitle: "Reddit", DefaultSize: models.SizeLarge},
		{Type: models.WidgetHealth, Name: "Health", DefaultTitle: "Health", DefaultSize: models.SizeMedium},
		{Type: models.WidgetStocks, Name: "Stocks", DefaultTitle: "Stocks", DefaultSize: models.SizeMedium},
		{Type: models.WidgetEmail, Name: "Email", DefaultTitle: "Inbox", DefaultSize: models.SizeMedium},
	}
	for i := range widgets {
		c.RegisterWidget(&widgets[i])
	}

	services := []ServiceDef{
		{Type: models.ServiceNews, Name: "News API"},
		{Type: models.ServiceTwitter, Name: "Twitter"},
		{Type: models.ServiceFacebook, Name: "Facebook"},
		{Type: models.ServiceInstagram, Name: "Instagram"},
		{Type: models.ServiceReddit, Name: "Reddit"},
		{Type: models.ServiceFitbit, Name: "Fitbit"},
		{Type: models.ServiceAppleHealth, Name: "Apple Health"},
		{Type: models.ServiceGoogleFit, Name: "Google Fit"},
		{Type: models.ServiceStocks, Name: "Stocks"},
		{Type: models.ServiceGmail, Name: "Gmail"},
		{Type: models.ServiceOutlook, Name: "Outlook"},
	}
	for i := range services {
		c.RegisterService(&services[i])
	}

	return c
}
