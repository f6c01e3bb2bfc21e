// This file is part of Gopher8.
//
// Gopher8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher8.  If not, see <https://www.gnu.org/licenses/>.

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexbus/gopher8/curated"
	"github.com/hexbus/gopher8/gui"
)

type featureRequest struct {
	request gui.FeatureReq
	args    []gui.FeatureReqData
}

// ReqFeature implements the gui.GUI interface. the request is serviced on the
// main thread as part of the Service() loop.
func (sp *SdlPlay) ReqFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	sp.featureReq <- featureRequest{request: request, args: args}
	return <-sp.featureErr
}

// featureRequests have been handed over to the featureReq channel. we service
// any requests on that channel here.
func (sp *SdlPlay) serviceFeatureRequests(request featureRequest) {
	// lazy (but clear) handling of type assertion errors
	defer func() {
		if r := recover(); r != nil {
			sp.featureErr <- curated.Errorf("sdlplay: %v", r)
		}
	}()

	var err error

	switch request.request {
	case gui.ReqSetEventChan:
		sp.events = request.args[0].(chan gui.Event)

	case gui.ReqSetVisibility:
		sp.showWindow(request.args[0].(bool))

	case gui.ReqToggleVisibility:
		if sp.window.GetFlags()&sdl.WINDOW_HIDDEN == sdl.WINDOW_HIDDEN {
			sp.showWindow(true)
		} else {
			sp.showWindow(false)
		}

	case gui.ReqFullScreen:
		if request.args[0].(bool) {
			err = sp.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
		} else {
			err = sp.window.SetFullscreen(0)
		}

	case gui.ReqSetScale:
		err = sp.setScaling(request.args[0].(float32))

	case gui.ReqSavePrefs:
		sp.savePrefs()

	default:
		err = curated.Errorf(gui.UnsupportedGuiFeature, request.request)
	}

	sp.featureErr <- err
}
