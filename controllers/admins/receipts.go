package admins

import (
	"net/http"

	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/uploads/{file}
// Receipts contain payer identity, so only operators can fetch them. The
// filename is sanitized before it touches the filesystem; anything stripped
// to nothing just 404s.
func GetReceipt(w http.ResponseWriter, r *http.Request) {
	p, err := utils.ResolveReceipt(mux.Vars(r)["file"])
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Não encontrado.")
		return
	}
	http.ServeFile(w, r, p)
}
