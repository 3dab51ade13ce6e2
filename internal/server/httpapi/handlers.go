package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/services"
)

func (a *API) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	token, err := a.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *API) listElections(c *gin.Context) {
	out, err := a.Elections.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) createElection(c *gin.Context) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		StartDate   string   `json:"startDate"`
		EndDate     string   `json:"endDate"`
		Status      string   `json:"status"`
		Positions   []string `json:"positions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	e, err := a.Elections.Create(c.Request.Context(), services.ElectionInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Positions:   req.Positions,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// updateElection applies a partial update. Only status is mutable.
func (a *API) updateElection(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		badRequest(c, "Invalid election ID")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		badRequest(c, "status is required")
		return
	}

	e, err := a.Elections.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (a *API) listCandidates(c *gin.Context) {
	out, err := a.Candidates.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) createCandidate(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		Position   string `json:"position"`
		Party      string `json:"party"`
		ElectionID flexID `json:"electionId"`
		ImageURL   string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	out, err := a.Candidates.Create(c.Request.Context(), services.CandidateInput{
		Name:       req.Name,
		Position:   req.Position,
		Party:      req.Party,
		ElectionID: int64(req.ElectionID),
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) deleteCandidate(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		badRequest(c, "Invalid candidate ID")
		return
	}
	if err := a.Candidates.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) candidateImageUploadURL(c *gin.Context) {
	var req struct {
		ContentType string `json:"contentType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	out, err := a.Candidates.ImageUploadURL(c.Request.Context(), req.ContentType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) listVoters(c *gin.Context) {
	out, err := a.Voters.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) createVoter(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		ElectionID flexID `json:"electionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	out, err := a.Voters.Create(c.Request.Context(), services.VoterInput{
		Name:       req.Name,
		Email:      req.Email,
		ElectionID: int64(req.ElectionID),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) listTokenBatches(c *gin.Context) {
	out, err := a.Tokens.ListBatches(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) generateTokens(c *gin.Context) {
	var req struct {
		ElectionIDs []flexID `json:"electionIds"`
		Count       int      `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	ids := make([]int64, 0, len(req.ElectionIDs))
	for _, id := range req.ElectionIDs {
		ids = append(ids, int64(id))
	}

	out, err := a.Tokens.Generate(c.Request.Context(), ids, req.Count)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (a *API) deleteTokenBatch(c *gin.Context) {
	if err := a.Tokens.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) deleteToken(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		badRequest(c, "Invalid token ID")
		return
	}
	if err := a.Tokens.DeleteToken(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) listResults(c *gin.Context) {
	out, err := a.Results.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
