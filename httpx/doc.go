/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package httpx writes coreerr errors and results as JSON API envelopes.
//
// Every response body has the same shape:
//
//	{"meta":{"result":"SUCCESS"},"data":{...}}
//	{"meta":{"result":"FAIL","errorCode":"Not Found","message":"...","type":"not_found"},"data":null}
//
// Handlers return errors instead of writing failures themselves:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID, httpx.RequestLogger(log), w.Recoverer)
//	r.Get("/coupons/{id}", w.Handle(func(rw http.ResponseWriter, req *http.Request) error {
//	    c, err := svc.Coupon(req.Context(), chi.URLParam(req, "id"))
//	    if err != nil {
//	        return err
//	    }
//	    return httpx.WriteJSON(rw, http.StatusOK, c)
//	}))
//	r.NotFound(w.NotFound)
//	r.MethodNotAllowed(w.MethodNotAllowed)
package httpx
