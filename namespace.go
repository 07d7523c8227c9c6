package differenzler

import (
	"github.com/kataras/neffos"

	"differenzler/game"
)

type (

	// eventsHandler event name to its handler inside one namespace
	eventsHandler map[string]neffos.MessageHandlerFunc

	// SpaceManager namespace name to its events
	SpaceManager map[string]eventsHandler

	// SpaceHandler interface
	//     ⎜
	//     ⎣ SpaceManager
	//       ⎿ eventsHandler
	SpaceHandler interface {
		spaceHandler(spaceName string) neffos.Events
	}

	// GameService entry points of the differenzler namespace
	GameService interface {
		_OnNamespaceConnected(*neffos.NSConn, neffos.Message) error
		_OnNamespaceDisconnect(*neffos.NSConn, neffos.Message) error

		StartGame(*neffos.NSConn, neffos.Message) error
		MakeGuess(*neffos.NSConn, neffos.Message) error
		PlayCard(*neffos.NSConn, neffos.Message) error
	}
)

func (spaceHandlers SpaceManager) spaceHandler(spaceName string) neffos.Events {
	events := make(neffos.Events, len(spaceHandlers[spaceName]))
	for name, h := range spaceHandlers[spaceName] {
		events[name] = h
	}
	return events
}

// newSpaceManager binds the service to the event names of its namespace.
func newSpaceManager(sessions GameService) SpaceManager {
	sessionEventHandlers := eventsHandler{
		neffos.OnNamespaceConnected:  sessions._OnNamespaceConnected,
		neffos.OnNamespaceDisconnect: sessions._OnNamespaceDisconnect,

		game.SrvEvents.StartGame: sessions.StartGame,
		game.SrvEvents.MakeGuess: sessions.MakeGuess,
		game.SrvEvents.PlayCard:  sessions.PlayCard,
	}

	return SpaceManager{
		game.SpaceName: sessionEventHandlers,
	}
}

// namespaces the neffos form of the manager
func namespaces(spaces SpaceHandler) neffos.Namespaces {
	return neffos.Namespaces{
		game.SpaceName: spaces.spaceHandler(game.SpaceName),
	}
}
