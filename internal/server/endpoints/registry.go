package endpoints

import (
	"github.com/jackzampolin/scrapbook/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Chat endpoints
		&ChatEndpoint{},
		&GreetingEndpoint{},

		// Page endpoints
		&ListPagesEndpoint{},
		&GetPageEndpoint{},
		&SceneEndpoint{},

		// Birthday endpoints
		&BirthdayEndpoint{},
		&CalendarEndpoint{},
		&PromptEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}

// ChatCommands groups chat-related commands under "chat".
func ChatCommands() []api.Endpoint {
	return []api.Endpoint{
		&ChatEndpoint{},
		&GreetingEndpoint{},
	}
}

// PageCommands groups page-related commands under "pages".
func PageCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListPagesEndpoint{},
		&GetPageEndpoint{},
		&SceneEndpoint{},
	}
}

// BirthdayCommands groups birthday-related commands under "birthday".
func BirthdayCommands() []api.Endpoint {
	return []api.Endpoint{
		&BirthdayEndpoint{},
		&CalendarEndpoint{},
		&PromptEndpoint{},
	}
}

// TopLevelCommands are attached directly to "api".
func TopLevelCommands() []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}
