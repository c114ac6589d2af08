package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/language"
)

func (h *Handler) CropNames(c *gin.Context) {
	lang := language.Resolve(c.Query("language"))
	common.OK(c, gin.H{"language": lang, "crops": knowledge.LocalizedCrops(lang)})
}

func (h *Handler) MandiPrices(c *gin.Context) {
	commodity := strings.TrimSpace(c.Query("commodity"))
	if commodity == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "commodity required")
		return
	}
	report, err := h.Mandi.Prices(c.Request.Context(), commodity, c.Query("state"), c.Query("district"))
	if err != nil {
		// only a cancelled request gets here
		common.Fail(c, http.StatusServiceUnavailable, 50302, "price lookup cancelled")
		return
	}
	common.OK(c, report)
}

func (h *Handler) MSP(c *gin.Context) {
	common.OK(c, h.Mandi.MSPTable())
}

func (h *Handler) ListSchemes(c *gin.Context) {
	var p knowledge.FarmerProfile
	_ = c.ShouldBindQuery(&p)
	if p == (knowledge.FarmerProfile{}) {
		all := h.Schemes.All()
		common.OK(c, gin.H{"schemes": all, "total": len(all)})
		return
	}
	found := h.Schemes.Find(p)
	common.OK(c, gin.H{"schemes": found, "total": len(found), "profile": p})
}

func (h *Handler) SchemeDetails(c *gin.Context) {
	s, err := h.Schemes.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownScheme) {
			common.Fail(c, http.StatusNotFound, 40403, "scheme not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, s)
}

func (h *Handler) CropCalendar(c *gin.Context) {
	if m := c.Query("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			common.Fail(c, http.StatusBadRequest, 10006, "month must be 1-12")
			return
		}
		common.OK(c, h.Calendar.Month(n))
		return
	}
	common.OK(c, gin.H{"calendar": h.Calendar.Year(), "current": h.Calendar.Month(0)})
}

func (h *Handler) CurrentSeason(c *gin.Context) {
	common.OK(c, h.Calendar.CurrentSeason())
}

func (h *Handler) Fertilizer(c *gin.Context) {
	plan, err := h.Soil.Fertilizer(c.Query("crop"))
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownCrop) {
			common.FailWithData(c, http.StatusNotFound, 40405, "unknown crop", gin.H{
				"available_crops": h.Soil.FertilizerCrops(),
			})
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, plan)
}

type soilAnalyzeReq struct {
	Symptoms string `json:"symptoms"`
}

func (h *Handler) AnalyzeSoil(c *gin.Context) {
	var req soilAnalyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "symptoms required")
		return
	}
	common.OK(c, h.Soil.AnalyzeSymptoms(req.Symptoms))
}

func (h *Handler) EconomicsCalculate(c *gin.Context) {
	area := floatQuery(c, "area", 1)
	if area <= 0 {
		common.Fail(c, http.StatusBadRequest, 10006, "area must be positive")
		return
	}
	e, err := h.Economics.Calculate(c.Query("crop"), area, floatQuery(c, "price", 0), floatQuery(c, "cost", 0))
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownCrop) {
			common.FailWithData(c, http.StatusNotFound, 40405, "unknown crop", gin.H{
				"available_crops": h.Economics.Crops(),
			})
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, e)
}

func (h *Handler) EconomicsCompare(c *gin.Context) {
	crops := knowledge.DefaultComparisonCrops
	if q := c.Query("crops"); q != "" {
		crops = nil
		for _, s := range strings.Split(q, ",") {
			if s = strings.TrimSpace(s); s != "" {
				crops = append(crops, s)
			}
		}
	}
	area := floatQuery(c, "area", 1)
	if area <= 0 {
		common.Fail(c, http.StatusBadRequest, 10006, "area must be positive")
		return
	}
	common.OK(c, h.Economics.Compare(crops, area))
}

type alertView struct {
	knowledge.Alert
	LocalTitle   string `json:"local_title"`
	LocalMessage string `json:"local_message"`
}

func (h *Handler) ListAlerts(c *gin.Context) {
	lang := language.Resolve(c.Query("language"))
	active := h.Alerts.Active(c.Query("crop"))
	out := make([]alertView, 0, len(active))
	for _, a := range active {
		title, msg := a.Localized(lang)
		out = append(out, alertView{Alert: a, LocalTitle: title, LocalMessage: msg})
	}
	common.OK(c, gin.H{"alerts": out, "total": len(out)})
}

func floatQuery(c *gin.Context, key string, def float64) float64 {
	v := c.Query(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
