package ring

// CDT and Bernoulli tables of the qTESLA Gaussian sampler.
// The values define the target distribution and must be kept bit-exact.

var gaussianTableI = GaussianTable{
	Name: "qTESLA-I",
	Xi:   27,
	Mask: 0x03FFFFFFFFFFFFFF,
	CDT: [][]uint64{
		{0x0200000000000000, 0x0000000000000000},
		{0x0300000000000000, 0x0000000000000000},
		{0x0320000000000000, 0x0000000000000000},
		{0x0321000000000000, 0x0000000000000000},
		{0x0321020000000000, 0x0000000000000000},
		{0x0321020100000000, 0x0000000000000000},
		{0x0321020100200000, 0x0000000000000000},
		{0x0321020100200100, 0x0000000000000000},
		{0x0321020100200100, 0x0200000000000000},
		{0x0321020100200100, 0x0200010000000000},
		{0x0321020100200100, 0x0200010000200000},
		{0x0321020100200100, 0x0200010000200001},
	},
	Exp: [3][32]float64{
		{
			1.000000000000000000000000000000000000000,
			0.9990496327075997720621566739241504871513,
			0.9981001686131900082646604498429491608001,
			0.9971516068584008799087793737854343387385,
			0.9962039465856783249057599531380206128030,
			0.9952571869382832724989228009014122394200,
			0.9943113270602908687225570427678069689363,
			0.9933663660965897025969132575731249565771,
			0.9924223031928810330585953871541593536283,
			0.9914791374956780166256527164832613053574,
			0.9905368681523049357966736891640434381216,
			0.9895954943108964281831839869512129866330,
			0.9886550151203967163746519649066284074237,
			0.9877154297305588385354051961226109899227,
			0.9867767372919438797327625416330343864518,
			0.9858389369559202039956868221933583419625,
			0.9849020278746626871032638290431658501235,
			0.9839660092011519501023140705695025630520,
			0.9830308800891735935534443109670000387768,
			0.9820966396933174325048466155419862577528,
			0.9811632871689767321931532752331431453491,
			0.9802308216723474444706566402213564033800,
			0.9792992423604274449582035491768120172661,
			0.9783685483910157709230746967427200384407,
			0.9774387389227118598811599372828827520575,
			0.9765098131149147889227411777252636721429,
			0.9755817701278225147611951665163479411869,
			0.9746546091224311145039291392620050672727,
			0.9737283292605340271448629345703623656609,
			0.9728029297047212957777718459314622781631,
			0.9718784096183788105298051271677986565965,
			0.9709547681656875522144957200697952895280,
		},
		{
			1.000000000000000000000000000000000000000,
			0.9700320045116228367035774232914930379400,
			0.9409620897768370674212298508058219852849,
			0.9127633421156708668942503744059309052528,
			0.8854096543971923811501043960464255901147,
			0.8588757018688517364879932717859212289637,
			0.8331369187101692180902460141030849026557,
			0.8081694752890624155161689578277768341910,
			0.7839502560997556536888618983783791053116,
			0.7604568383618460545183896873859249753543,
			0.7376674712607126902372883387750345338472,
			0.7155610558100490615694685434237323547987,
			0.6941171253178751117406951384261687867164,
			0.6733158264379437043232142381368341940533,
			0.6531379007889984662634253213819854052726,
			0.6335646671248656289427239706049936967143,
			0.6145780040388724765036124496076447154217,
			0.5961603331865797040852326968966728810261,
			0.5782946030112948570545930362131434268247,
			0.5609642729572995100665682618108293115511,
			0.5441532981561743827978648643747061873131,
			0.5278461145720445955231454653404664082188,
			0.5120276245919921478529972155927751107378,
			0.4966831830482948512984566287866591847562,
			0.4817985836595507424420546966358580262381,
			0.4673600458781348185224193866260805625424,
			0.4533542021318111302275642196084653301628,
			0.4397680854476881857303133336231578259611,
			0.4265891174470596033395475021945475958821,
			0.4138050967000153253100465421861800587782,
			0.4014041874290417902572763743098032661210,
			0.3893749085511525646401543103372782315254,
		},
		{
			1.000000000000000000000000000000000000000,
			0.3777061230484043540417651455683576466650,
			0.1426619153882563708052119679085105421822,
			0.05388427896795781140761650507038592985458,
			0.02035242210224601989078627211632756962058,
			0.007687234446883999610174328676334715949640,
			0.002903515519896700541261482818225051140099,
			0.001096675590231054915122715889282581559573,
			0.0004142210854279922997296008273437255752956,
			0.0001564538402619088712753422615493598849163,
			5.909357344135995142394679824207999201121E-5,
			2.232000452161222135025591154935960584027E-5,
			8.430402374281007236700902260035220289887E-6,
			3.184214596527742337148476455363347356131E-6,
			1.202697350208632670782595114365065060885E-6,
			4.542661533478916755570208360842380811059E-7,
			1.715791076131440947144583312662638239090E-7,
			6.480647953266561572601959656715022445021E-8,
			2.447780413269889735078224512008720987199E-8,
			9.245416499699910342143072277116651273927E-9,
			3.492050422069402212293514861017928736701E-9,
			1.318968826409377991494549187659977485249E-9,
			4.981826018447900060525041555590742055479E-10,
			1.881666191129624879723808164319051826703E-10,
			7.107168419228284402686789774896404982106E-11,
			2.684421029478771850078976357840397379201E-11,
			1.013922259674033292202917547107956246173E-11,
			3.829646457739566105989785588606755995719E-12,
			1.446480916198866420590826731657500079699E-12,
			5.463446989209777070985952848270039796153E-13,
			2.063577380774902353530525926195322827410E-13,
			7.794258121028692337871970872695782456164E-14,
		},
	},
}

var gaussianTableIIISize = GaussianTable{
	Name: "qTESLA-III-size",
	Xi:   9,
	Mask: 0x000003FFFFFFFFFF,
	CDT: [][]uint64{
		{0x0000020000000000, 0x0000000000000000, 0x0000000000000000},
		{0x0000030000000000, 0x0000000000000000, 0x0000000000000000},
		{0x0000032000000000, 0x0000000000000000, 0x0000000000000000},
		{0x0000032100000000, 0x0000000000000000, 0x0000000000000000},
		{0x0000032102000000, 0x0000000000000000, 0x0000000000000000},
		{0x0000032102010000, 0x0000000000000000, 0x0000000000000000},
		{0x0000032102010020, 0x0000000000000000, 0x0000000000000000},
		{0x0000032102010020, 0x0100000000000000, 0x0000000000000000},
		{0x0000032102010020, 0x0100020000000000, 0x0000000000000000},
		{0x0000032102010020, 0x0100020001000000, 0x0000000000000000},
		{0x0000032102010020, 0x0100020001000020, 0x0000000000000000},
		{0x0000032102010020, 0x0100020001000020, 0x0001000000000000},
		{0x0000032102010020, 0x0100020001000020, 0x0001000002000000},
		{0x0000032102010020, 0x0100020001000020, 0x0001000002000001},
	},
	Exp: [3][32]float64{
		{
			1.000000000000000000000000000000000000000,
			0.9914791374956780166256527164832613053571,
			0.9830308800891735935534443109670000387763,
			0.9746546091224311145039291392620050672719,
			0.9663497112088951922951613058690022829314,
			0.9581155781885929401990530331782558043141,
			0.9499516070835989810875119461809064028436,
			0.9418572000538799331122753584612083652659,
			0.9338317643535151384510743106138183393464,
			0.9258747122872904292046909607697858626681,
			0.9179854611676617518466375609653990674902,
			0.9101634332720854987115840832838713554612,
			0.9024080558007124218622779514513692802555,
			0.8947187608344420312994997523024746481561,
			0.8870949852933344058775329566907233056474,
			0.8795361708953763714606266672461444022383,
			0.8720417641155990268059148554652540437481,
			0.8646112161455436233871237462566364157436,
			0.8572439828530728308830350554160731167048,
			0.8499395247425244453469447315612369857573,
			0.8426973069152046221501168284377584096225,
			0.8355167990302177406553164840946716839800,
			0.8283974752656300322277354108287439566785,
			0.8213388142799641276318029906853001579399,
			0.8143402991740217040952958306017837324709,
			0.8074014174530314363485930132316684297705,
			0.8005216609891194797686327175999898485396,
			0.7937005259840997373758528196362056425534,
			0.7869375129325811858498730937766509221324,
			0.7802321265853895589476145632070372895529,
			0.7735838759133007097276526159890746982448,
			0.7669922740710829958085504579386416555178,
		},
		{
			1.000000000000000000000000000000000000000,
			0.7604568383618460545183896873859249753475,
			0.5782946030112948570545930362131434268144,
			0.4397680854476881857303133336231578259493,
			0.3344246478719911187527828322027724928608,
			0.2543155103910080342970055083858543302085,
			0.1933959689783251774319131539973439846964,
			0.1470692871211828233002294902623869285186,
			0.1118398451043052539124374690378746581867,
			0.08504937501089856026598002345785969689094,
			0.06467637882543891546556817756072387747580,
			0.04918359455828632411561706836107898770425,
			0.03740200081706531437355334981568317355141,
			0.02844260728975267183473700260264866937793,
			0.02162937521433291185350875280154002043654,
			0.01644820629123368251045619881301564591324,
			0.01250815095295499187138488621251445374394,
			0.009511908927436864946476253160699531924110,
			0.007233396189744456478161648131023810676186,
			0.005500685597071693273438807825124675969776,
			0.004183033977971683306471670038350398811758,
			0.003181016793648522281622249338293172571527,
			0.002419025973673892113793457594010940853648,
			0.001839564843855234244359912809497771132576,
			0.001398909665119754443995012731965930379687,
			0.001063810421090797298768120396911690794771,
			0.0008089819094390918283473978621390203944673,
			0.0006151958251439810374839895543363501050953,
			0.0004678298721623988965815688638575721914033,
			0.0003557644254758444808169155363704398225966,
			0.0002705434901989792929582192527080744710506,
			0.0002057366471960948784546183663182928059645,
		},
		{
			1.000000000000000000000000000000000000000,
			0.0001564538402619088712753422615493598848717,
			2.447780413269889735078224512008720985804E-8,
			3.829646457739566105989785588606755992447E-12,
			5.991628951587712183461314435723455239107E-16,
			9.374133589003324437283071562544462897124E-20,
			1.466619199127720628458909574032394007656E-23,
			2.294582059053771218038974267927533833163E-27,
			3.589961749350406706790987553377863179812E-31,
			5.616633020792314645332222710264644857908E-35,
			8.787438054448034835939954112296077697602E-39,
			1.374828429682032112779050229478845154715E-42,
			2.150971875250036652628677686695580621313E-46,
			3.365278101782278104362461212648493483965E-50,
			5.265106825731444425408506379787751403098E-54,
			8.237461822748734749731771711361450782154E-58,
			1.288782536179903234906819256928735424052E-61,
			2.016349770478283712998453222332343703812E-65,
			3.154656649025460159903286438614052035760E-69,
			4.935581474477980619913950088312373997931E-73,
			7.721906756076146364991353446502442654680E-77,
			1.208121966132492313782281967679468463452E-80,
			1.890153211061962317744312705074835436919E-84,
			2.957217285540223765931001823632869648146E-88,
			4.626680008116659240109379372702265238809E-92,
			7.238618549328510447646200176448777448608E-96,
			1.132509670233533294861752560334068442100E-99,
			1.771854870417843101882482426208692422294E-103,
			2.772134988636384669818807165401424398102E-107,
			4.337111646965654912069237407317707678694E-111,
			6.785577728124290751600099215097500773985E-115,
			1.061629693960724289088455922591023103484E-118,
		},
	},
}
